package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file",
	Long: `Open the vhost configuration file in an editor.

Uses $EDITOR environment variable or defaults to vi.

Examples:
  vhost edit
  vhost edit --config ./vhost.yaml
  EDITOR=nano vhost edit`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// getEditor returns $EDITOR, or vi when unset
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

func runEdit(cmd *cobra.Command, args []string) error {
	configPath, err := deps.ConfigLoader.Path()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'vhost init')", configPath)
	}

	editor := getEditor()
	editorPath, err := deps.CommandRunner.LookPath(editor)
	if err != nil {
		return fmt.Errorf("editor not found: %s", editor)
	}

	output.Info("Opening %s with %s...", configPath, editor)
	if err := deps.CommandRunner.RunInteractive(editorPath, configPath); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	output.Success("Editor closed")
	output.Info("Run 'vhost sync' to apply changes")
	return nil
}
