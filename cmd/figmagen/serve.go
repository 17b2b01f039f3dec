package main

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/figmagen/pkg/mcp"
	"github.com/gnana997/figmagen/pkg/mcplog"
	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/watch"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		logPath string
		watchFS bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry, parser and generators as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				if !cmd.Flags().Changed("mcp-log") {
					logPath = p.Config().MCPLog
				}
				callLog, err := mcplog.NewLogger(logPath)
				if err != nil {
					return err
				}
				defer callLog.Close()

				if watchFS {
					rb := watch.NewRebuilder(p, p.Logger())
					rb.WriteOutputs = false
					w, err := rb.Watch(watch.Options{})
					if err != nil {
						return err
					}
					defer w.Stop()
				}

				p.Logger().Info("mcp server starting", "call_log", logPath, "watch", watchFS)
				return mcpserver.NewServer(p, callLog).ServeStdio()
			})
		},
	}
	cmd.Flags().StringVar(&logPath, "mcp-log", "", "append one JSONL line per tool call to this file")
	cmd.Flags().BoolVar(&watchFS, "watch", false, "reload the registry, theme and sources when they change")
	return cmd
}
