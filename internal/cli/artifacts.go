package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/store"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Browse saved pipeline results",
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts for a project",
	RunE:  runArtifactsList,
}

var artifactsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactsShow,
}

var flagArtifactsType string

func init() {
	artifactsListCmd.Flags().StringVar(&flagArtifactsType, "type", "", "Filter by artifact type")
	artifactsCmd.AddCommand(artifactsListCmd, artifactsShowCmd)
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifactsList(cmd *cobra.Command, args []string) error {
	if flagProject == "" {
		return fmt.Errorf("--project is required")
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	db, err := store.Open(a.cfg.StorePath)
	if err != nil {
		return err
	}
	defer db.Close()

	project, err := db.FindOrCreateProject(ctx, flagProject)
	if err != nil {
		return err
	}
	artifacts, err := db.ListArtifacts(ctx, project.ID, flagArtifactsType)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		fmt.Println("No artifacts yet.")
		return nil
	}
	for _, art := range artifacts {
		fmt.Printf("%s  %-14s  %s  %s\n", art.ID, art.Type, art.CreatedAt.Format("2006-01-02 15:04"), art.Title)
	}
	return nil
}

func runArtifactsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	db, err := store.Open(a.cfg.StorePath)
	if err != nil {
		return err
	}
	defer db.Close()

	art, err := db.GetArtifact(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) %s\n", art.Title, art.Type, art.CreatedAt.Format("2006-01-02 15:04"))
	if art.ContentText != "" {
		fmt.Println("\n" + art.ContentText)
	}
	if art.ContentJSON != "" {
		fmt.Println("\n" + art.ContentJSON)
	}
	return nil
}
