package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/natsuyasai/api-tester-sub003/pkg/format"
	"github.com/natsuyasai/api-tester-sub003/pkg/request"
	"github.com/natsuyasai/api-tester-sub003/pkg/storage"
)

var (
	responseFile string
	envName      string
	copyOutput   bool

	renderCmd = &cobra.Command{
		Use:   "render <request-file>",
		Short: "Render the raw HTTP view of a request definition",
		Long: `Render loads a request definition and prints it as raw HTTP/1.1 request
text. With --response, a captured response file is rendered alongside it as
the combined raw view.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
)

func init() {
	renderCmd.Flags().StringVar(&responseFile, "response", "", "Captured response file to render alongside the request")
	renderCmd.Flags().StringVarP(&envName, "env", "e", "", "Environment to use for variable substitution")
	renderCmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the rendered text to the clipboard")
}

func runRender(cmd *cobra.Command, args []string) error {
	req, err := loadRequestFile(args[0])
	if err != nil {
		return err
	}

	if envName != "" {
		env, err := storage.LoadEnvironment(storage.EnvironmentPath(baseDir(), envName))
		if err != nil {
			return fmt.Errorf("failed to load environment '%s': %w", envName, err)
		}
		req = storage.ApplyEnvironment(req, env)
	}

	// Requests without their own user agent pick up the configured one.
	if req.Settings == nil || req.Settings.UserAgent == "" {
		if ua := viper.GetString("user_agent"); ua != "" {
			req.Settings = &request.Settings{UserAgent: ua}
		}
	}

	var text string
	if responseFile != "" {
		resp, err := storage.LoadResponse(responseFile)
		if err != nil {
			return err
		}
		text, err = format.RawView(req, resp)
		if err != nil {
			return err
		}
	} else {
		text, err = format.FormatRequest(req)
		if err != nil {
			return err
		}
	}

	fmt.Println(styleRawView(text))

	if copyOutput {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, HintStyle.Render("Copied to clipboard"))
	}
	return nil
}
