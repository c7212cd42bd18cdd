package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/boxsdk/pkg/box"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func (a *app) newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Read, add, reply to, edit, and delete comments",
		Long: "Comment commands talk to the configured API. A message containing \"@[\"\n" +
			"is sent as a tagged message so mentions are resolved.",
	}

	var fields []string
	get := &cobra.Command{
		Use:   "get <comment-id>",
		Short: "Show a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComment(cmd, func(client *box.Client) (*box.Comment, error) {
				return client.Comment(args[0]).Get(cmd.Context(), fields...)
			})
		},
	}
	get.Flags().StringSliceVar(&fields, "fields", nil, "limit the response to these attributes")

	reply := &cobra.Command{
		Use:   "reply <comment-id> <message>",
		Short: "Reply to a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComment(cmd, func(client *box.Client) (*box.Comment, error) {
				return client.Comment(args[0]).Reply(cmd.Context(), args[1])
			})
		},
	}

	edit := &cobra.Command{
		Use:   "edit <comment-id> <message>",
		Short: "Replace a comment's message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComment(cmd, func(client *box.Client) (*box.Comment, error) {
				return client.Comment(args[0]).Edit(cmd.Context(), args[1])
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <file-id> <message>",
		Short: "Add a comment to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withComment(cmd, func(client *box.Client) (*box.Comment, error) {
				return client.AddComment(cmd.Context(), types.Item{Type: types.ItemTypeFile, ID: args[0]}, args[1])
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.Comment(args[0]).Delete(cmd.Context()); err != nil {
				return apiError(fmt.Errorf("delete comment %s: %w", args[0], err))
			}
			return a.printer(cmd).deleted(types.ItemTypeComment, args[0])
		},
	}

	cmd.AddCommand(get, reply, edit, add, del)
	return cmd
}

// withComment builds a client, runs call, and prints the returned comment.
func (a *app) withComment(cmd *cobra.Command, call func(*box.Client) (*box.Comment, error)) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	c, err := call(client)
	if err != nil {
		return apiError(fmt.Errorf("%s: %w", cmd.CommandPath(), err))
	}
	return a.printer(cmd).comment(c.Info)
}
