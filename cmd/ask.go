package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chatbotht/client-sdk/Go/client"
)

func newAskCommand() *cobra.Command {
	var serverURL string
	var upload string

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a message (and optionally a document) to a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewClient(serverURL)
			out := cmd.OutOrStdout()

			if upload != "" {
				f, err := os.Open(upload)
				if err != nil {
					return err
				}
				defer f.Close()
				msg, err := c.Upload(cmd.Context(), filepath.Base(upload), f)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, msg)
			}

			if len(args) == 0 {
				return nil
			}
			reply, err := c.Chat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:5000", "Chatbot server URL")
	cmd.Flags().StringVar(&upload, "upload", "", "Document to upload before asking")
	return cmd
}
