package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/examchat/json"
	"github.com/spf13/cobra"
)

func (a *app) newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [file]",
		Short: "Format markdown from a file or stdin and print the document as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			data, err := json.MarshalDocument(formatter(cfg)(string(src)))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return err
		},
	}
}

// readSource reads the named file, or stdin when no file is given or the
// name is "-".
func readSource(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
