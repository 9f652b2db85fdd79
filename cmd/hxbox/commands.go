package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbox"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hxbox",
		Short:         "Render, inspect and serve Box elements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newClassifyCmd(), newServeCmd(), newVersionCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var tag, file string

	cmd := &cobra.Command{
		Use:   "render [key=value...]",
		Short: "Render a Box to stdout",
		Long: `Render a Box with the given props.

Props from --file (a YAML mapping) are applied first; key=value arguments
override them. Values are parsed as integers, floats or true/false when
possible and kept as strings otherwise.`,
		Example: `  hxbox render display=flex flexDirection=column className=jeff id=bob
  hxbox render --tag x-foo display=flex
  hxbox render -f card.yaml padding=8px`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults hxbox.Props
			if file != "" {
				p, err := loadProps(file)
				if err != nil {
					return err
				}
				defaults = p
			}

			props, err := parseArgs(args)
			if err != nil {
				return err
			}
			if tag != "" {
				props = props.With(hxbox.TagNameKey, tag)
			}

			box := hxbox.Default.WithProps(defaults)
			if err := hxbox.Render(box, props, nil).Render(context.Background(), cmd.OutOrStdout()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "element tag (default div)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with default props")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify TAG NAME...",
		Short: "Print how each property name is routed for a tag",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := hxbox.Default.Classifier()
			for _, name := range args[1:] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, c.Classify(args[0], name))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hxbox",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hxbox version %s\n", version)
		},
	}
}

func loadProps(path string) (hxbox.Props, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hxbox.Props{}, err
	}
	var p hxbox.Props
	if err := yaml.Unmarshal(data, &p); err != nil {
		return hxbox.Props{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func parseArgs(args []string) (hxbox.Props, error) {
	var p hxbox.Props
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return hxbox.Props{}, fmt.Errorf("invalid prop %q: expected key=value", arg)
		}
		p = p.With(key, parseValue(raw))
	}
	return p, nil
}

func parseValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
