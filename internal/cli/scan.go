package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/passgen/passgen-go/internal/detect"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
	"github.com/passgen/passgen-go/internal/session"
	"github.com/spf13/cobra"
)

func newScanCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <file|->",
		Short: "List the password fields of an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			root, err := detect.Parse(in)
			if err != nil {
				return fmt.Errorf("parse page: %w", err)
			}

			s := session.New(app.detector, session.WithLogger(app.Logger))
			defer s.Close()
			resp := service.DescribeFields(root, s.Scan(root))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			return printFields(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// printFields writes one row per detected field. The # column is what
// `fill --field` takes; PAIRED names the partner input.
func printFields(w io.Writer, resp model.DetectResponse) error {
	if len(resp.Fields) == 0 {
		_, err := fmt.Fprintln(w, "no password fields found")
		return err
	}

	byInput := make(map[int]model.FieldResponse, len(resp.Fields))
	for _, f := range resp.Fields {
		byInput[f.Index] = f
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINPUT\tFIELD\tCONTEXT\tFORM\tPAIRED")
	for i, f := range resp.Fields {
		paired := "-"
		if f.PairedIndex != nil {
			if p, ok := byInput[*f.PairedIndex]; ok {
				paired = fieldLabel(p)
			} else {
				paired = "input " + strconv.Itoa(*f.PairedIndex)
			}
		}
		form := f.FormID
		if form == "" {
			form = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", i, f.Index, fieldLabel(f), f.Context, form, paired)
	}
	return tw.Flush()
}

// fieldLabel names a field by its name, id or placeholder, in that order.
func fieldLabel(f model.FieldResponse) string {
	switch {
	case f.Name != "":
		return f.Name
	case f.ID != "":
		return "#" + f.ID
	case f.Placeholder != "":
		return strconv.Quote(f.Placeholder)
	}
	return "input " + strconv.Itoa(f.Index)
}
