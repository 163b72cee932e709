// Package cli is the command surface of the portal: persona-voiced
// reviews, brief building, copy generation, and QA from the terminal.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/MBurgo/omni/internal/config"
	"github.com/MBurgo/omni/internal/creative"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/observability"
	"github.com/MBurgo/omni/internal/persona"
	"github.com/MBurgo/omni/internal/store"
)

var Version = "dev"

// Every pipeline command opens a span here so log lines and provider
// calls underneath it correlate by trace_id.
var tracer = otel.Tracer("omni-cli")

var rootCmd = &cobra.Command{
	Use:           "omni",
	Short:         "Marketing-copy workbench: persona reviews, briefs, drafts, and QA",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("omni %s\n", Version)
	},
}

var (
	flagVerbose  bool
	flagSecrets  string
	flagPersonas string
	flagProject  string
	flagModel    string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
	rootCmd.PersistentFlags().StringVar(&flagSecrets, "secrets", "", "Path to a YAML secrets file (env vars used otherwise)")
	rootCmd.PersistentFlags().StringVar(&flagPersonas, "personas", "personas.json", "Path to the persona library JSON")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "Project name; when set, results are saved to the local store")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Model id override (provider default otherwise)")

	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// app bundles the collaborators every command needs. Personas and the
// store are loaded lazily so commands that never touch them don't pay
// for them (or fail on their config).
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	router *llm.Router

	personas []persona.Persona
	db       *store.Store
	project  store.Project
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagSecrets)
	if err != nil {
		return nil, err
	}
	log := observability.InitLogger(flagVerbose)
	return &app{
		cfg:    cfg,
		log:    log,
		router: llm.NewRouter(cfg.OpenAIKey, cfg.GoogleKey, log),
	}, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) loadPersonas() ([]persona.Persona, error) {
	if a.personas != nil {
		return a.personas, nil
	}
	ps, err := persona.Load(flagPersonas)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("no personas found in %s", flagPersonas)
	}
	a.personas = ps
	return ps, nil
}

func (a *app) findPersona(key string) (persona.Persona, error) {
	ps, err := a.loadPersonas()
	if err != nil {
		return persona.Persona{}, err
	}
	p, ok := persona.Find(ps, key)
	if !ok {
		var known []string
		for _, c := range ps {
			known = append(known, c.UID)
		}
		return persona.Persona{}, fmt.Errorf("persona %q not found; known: %s", key, strings.Join(known, ", "))
	}
	return p, nil
}

func (a *app) traitConfig(ctx context.Context) creative.TraitConfig {
	cfg, err := creative.LoadTraitConfig(a.cfg.TraitPath)
	if err != nil {
		a.log.WarnContext(ctx, "trait config unreadable, using defaults", "path", a.cfg.TraitPath, "error", err)
		return creative.TraitConfig{}
	}
	return cfg
}

// save persists a pipeline result when --project is set; persistence
// failures are logged, never fatal, because the result is already on
// screen.
func (a *app) save(ctx context.Context, artifactType, title string, content any, contentText string) {
	if flagProject == "" {
		return
	}
	if a.db == nil {
		db, err := store.Open(a.cfg.StorePath)
		if err != nil {
			a.log.WarnContext(ctx, "could not open store", "path", a.cfg.StorePath, "error", err)
			return
		}
		project, err := db.FindOrCreateProject(ctx, flagProject)
		if err != nil {
			a.log.WarnContext(ctx, "could not resolve project", "name", flagProject, "error", err)
			db.Close()
			return
		}
		a.db, a.project = db, project
	}

	var contentJSON string
	if content != nil {
		if b, err := json.Marshal(content); err == nil {
			contentJSON = string(b)
		}
	}
	id, err := a.db.SaveArtifact(ctx, store.Artifact{
		ProjectID:   a.project.ID,
		Type:        artifactType,
		Title:       title,
		ContentJSON: contentJSON,
		ContentText: contentText,
	})
	if err != nil {
		a.log.WarnContext(ctx, "could not save artifact", "type", artifactType, "error", err)
		return
	}
	a.log.InfoContext(ctx, "artifact saved", "type", artifactType, "id", id, "project", a.project.Name)
}

// parseTraits reads "optimism=9,skepticism=3" into trait scores.
func parseTraits(spec string) (map[string]int, error) {
	traits := map[string]int{}
	if strings.TrimSpace(spec) == "" {
		return traits, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid trait %q: expected name=score", pair)
		}
		score, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || score < 0 || score > 10 {
			return nil, fmt.Errorf("invalid trait score in %q: must be 0-10", pair)
		}
		traits[strings.TrimSpace(name)] = score
	}
	return traits, nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(b))
}
