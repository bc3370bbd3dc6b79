package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "static/css/input.css"
	cssOutput = "static/css/app.css"
)

// CSSCmd rebuilds the stylesheet with the Tailwind standalone CLI. It is a
// no-op when app.css is newer than every template and script.
func CSSCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Build static/css/app.css with tailwindcss",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := exec.LookPath("tailwindcss"); err != nil {
				return fmt.Errorf("missing tailwindcss binary (https://tailwindcss.com/blog/standalone-cli): %w", err)
			}
			if !force && isUpToDate(cssOutput, cssInputs()) {
				fmt.Fprintln(cmd.OutOrStdout(), "[tailwindcss] skipped")
				return nil
			}

			start := time.Now()
			tw := exec.CommandContext(cmd.Context(), "tailwindcss", "-i", cssInput, "-o", cssOutput, "--minify")
			tw.Stdout = cmd.OutOrStdout()
			tw.Stderr = cmd.ErrOrStderr()
			if err := tw.Run(); err != nil {
				return fmt.Errorf("tailwindcss: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[tailwindcss] done (%s)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "rebuild even when up to date")
	return cmd
}

func cssInputs() []string {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	js, _ := filepath.Glob("static/js/*.js")
	return append(inputs, js...)
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
