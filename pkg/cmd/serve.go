package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/constants"
)

var flagPort int

func init() {
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 4477, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"web"},
	Short:   "Serve the .ai/ directory read-only over HTTP for browsing",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeServe()
	},
}

func executeServe() error {
	root, err := currentScope().Root()
	if err != nil {
		return err
	}

	dir := filepath.Join(root, constants.AIDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist; run 'skillkit init' first", dir)
	}

	addr := fmt.Sprintf("localhost:%d", flagPort)
	fmt.Printf("Serving %s at http://%s (Ctrl-C to stop)\n", dir, addr)
	return http.ListenAndServe(addr, http.FileServer(http.Dir(dir)))
}
