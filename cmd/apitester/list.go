package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/natsuyasai/api-tester-sub003/pkg/storage"
)

var (
	listEnvs bool

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved requests (or environments)",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
)

func init() {
	listCmd.Flags().BoolVar(&listEnvs, "environments", false, "List environments instead of requests")
}

func runList(cmd *cobra.Command, args []string) error {
	if listEnvs {
		envs, err := storage.ListEnvironments(baseDir())
		if err != nil {
			return err
		}
		if len(envs) == 0 {
			fmt.Println(HintStyle.Render("No environments found in " + storage.EnvironmentsDir(baseDir())))
			return nil
		}
		fmt.Println("Available environments:")
		for _, env := range envs {
			fmt.Println("  - " + env)
		}
		return nil
	}

	files, err := storage.ListRequests(baseDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println(HintStyle.Render("No saved requests found in " + storage.RequestsDir(baseDir())))
		return nil
	}
	fmt.Println("Saved requests:")
	for _, f := range files {
		fmt.Println("  - " + f)
	}
	return nil
}
