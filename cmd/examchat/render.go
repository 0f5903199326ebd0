package main

import (
	"fmt"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/fs"
	"github.com/fwojciec/examchat/reveal"
	"github.com/spf13/cobra"
)

func (a *app) newRenderCmd() *cobra.Command {
	var instant bool
	cmd := &cobra.Command{
		Use:   "render [file|pattern...]",
		Short: "Reveal markdown or JSON documents as a reply would be revealed",
		Long: "Reveal markdown or JSON documents as a reply would be revealed.\n\n" +
			"Files ending in .json are documents saved by the format command. Patterns\n" +
			"such as 'notes/**/*.md' are expanded. With no arguments markdown is read\n" +
			"from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			docs, err := loadDocuments(cmd, args, formatter(cfg))
			if err != nil {
				return err
			}
			speed := cfg.Speed
			if instant {
				speed = 0
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			writer := reveal.NewWriter(out, outputWidth(out))
			seq := reveal.NewSequencer(writer, reveal.WithMode(cfg.Mode))
			for i, doc := range docs {
				if i > 0 {
					if _, err := fmt.Fprintln(out); err != nil {
						return err
					}
				}
				seq.Reveal(ctx, doc, speed).Wait()
				if ctx.Err() != nil {
					return nil
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&instant, "instant", false, "reveal without delays")
	return cmd
}

// loadDocuments resolves every argument to documents, or formats stdin
// when there are none.
func loadDocuments(cmd *cobra.Command, args []string, format func(string) examchat.Document) ([]examchat.Document, error) {
	if len(args) == 0 {
		src, err := readSource(cmd, nil)
		if err != nil {
			return nil, err
		}
		return []examchat.Document{format(string(src))}, nil
	}
	var docs []examchat.Document
	for _, arg := range args {
		paths, err := fs.Expand(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			doc, err := fs.Load(path, format)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
