package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/boxsdk/pkg/box"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func (a *app) newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage metadata template schemas",
	}

	get := &cobra.Command{
		Use:   "get <scope> <template-key>",
		Short: "Show a template schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTemplate(cmd, func(client *box.Client) (*box.MetadataTemplate, error) {
				return client.MetadataTemplate(args[0], args[1]).Get(cmd.Context())
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create -f <schema.json>",
		Short: "Create a template from a JSON schema",
		Long: "Create a template. The file holds the creation body, for example\n" +
			`{"scope":"enterprise","displayName":"Contract","fields":[...]}` + "\n" +
			"Use -f - to read from stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(createFile, cmd.InOrStdin())
			if err != nil {
				return userError(fmt.Errorf("read %s: %w", createFile, err))
			}
			var req types.TemplateCreate
			if err := json.Unmarshal(data, &req); err != nil {
				return userError(fmt.Errorf("parse %s: %w", createFile, err))
			}
			return a.withTemplate(cmd, func(client *box.Client) (*box.MetadataTemplate, error) {
				return client.CreateMetadataTemplate(cmd.Context(), req)
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "schema JSON file, or - for stdin")
	_ = create.MarkFlagRequired("file")

	var opsFile string
	update := &cobra.Command{
		Use:   "update <scope> <template-key> -f <ops.json>",
		Short: "Apply a list of update operations to a template",
		Long: "Apply operations in order as one request. The file holds a JSON array of\n" +
			`operations such as {"op":"addField","data":{...}} or {"op":"removeField","fieldKey":"k"}.` + "\n" +
			"Use -f - to read from stdin.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(opsFile, cmd.InOrStdin())
			if err != nil {
				return userError(fmt.Errorf("read %s: %w", opsFile, err))
			}
			ops, err := types.DecodeTemplateOps(data)
			if err != nil {
				return userError(fmt.Errorf("parse %s: %w", opsFile, err))
			}
			u := types.NewTemplateUpdate()
			u.Append(ops...)
			a.log.WithField("ops", u.Len()).Debug("submitting template update")

			return a.withTemplate(cmd, func(client *box.Client) (*box.MetadataTemplate, error) {
				return client.MetadataTemplate(args[0], args[1]).Update(cmd.Context(), u)
			})
		},
	}
	update.Flags().StringVarP(&opsFile, "file", "f", "", "operations JSON file, or - for stdin")
	_ = update.MarkFlagRequired("file")

	del := &cobra.Command{
		Use:   "delete <scope> <template-key>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.MetadataTemplate(args[0], args[1]).Delete(cmd.Context()); err != nil {
				return apiError(fmt.Errorf("delete template %s/%s: %w", args[0], args[1], err))
			}
			return a.printer(cmd).deleted(types.ItemTypeMetadataTemplate, args[0]+"/"+args[1])
		},
	}

	cmd.AddCommand(get, create, update, del)
	return cmd
}

// withTemplate builds a client, runs call, and prints the returned schema.
func (a *app) withTemplate(cmd *cobra.Command, call func(*box.Client) (*box.MetadataTemplate, error)) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	t, err := call(client)
	if err != nil {
		return apiError(fmt.Errorf("%s: %w", cmd.CommandPath(), err))
	}
	return a.printer(cmd).template(t.Info)
}
