package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	bytecursor "github.com/Akron/bytecursor-go"
	"github.com/Akron/bytecursor-go/internal/layout"
	"github.com/Akron/bytecursor-go/internal/logger"
)

// Error is the error class for command failures outside decoding.
var Error = errs.Class("bcdump")

func newDecodeCmd() *cobra.Command {
	var (
		layoutArg string
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "decode --layout <file|inline> [--offset N] <file>",
		Short: "Decode a binary file field by field",
		Long: `Decode reads <file> from --offset and decodes it with the given layout.

The layout is either a YAML file or an inline list such as
  magic:bytes[4],version:uint16,count:uvarint32,price:decimal,tail:rest

Kinds: bool int8 uint8 int16 uint16 int32 uint32 int64 uint64 float32
float64 uvarint32 varint32 decimal bytes[N] skip[N] rest svb[N]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := resolveLayout(layoutArg)
			if err != nil {
				return err
			}

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return Error.Wrap(err)
			}
			if offset < 0 || offset > len(buf) {
				return Error.New("offset %d outside file of %d bytes", offset, len(buf))
			}
			log := logger.With("file", args[0])
			log.Debug("decoding", "size", len(buf), "offset", offset, "fields", len(l.Fields))

			c := bytecursor.NewAt(buf, offset)
			values, decodeErr := layout.Decode(c, l)

			rows := make([][]string, 0, len(values))
			for _, v := range values {
				rows = append(rows, []string{strconv.Itoa(v.Offset), v.Field.Name, v.Field.String(), v.String()})
			}
			out := cmd.OutOrStdout()
			printTable(out, []string{"offset", "name", "kind", "value"}, rows)
			fmt.Fprintf(out, "\n%d bytes unread at offset %d\n", c.Len(), c.Pos())

			if decodeErr != nil {
				log.Warn("decode stopped", "decoded", len(values), "error", decodeErr)
				return decodeErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&layoutArg, "layout", "l", "", "layout YAML file or inline layout")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to start decoding at")
	_ = cmd.MarkFlagRequired("layout")

	return cmd
}

// resolveLayout loads arg as a YAML file if it names one, else parses it inline.
func resolveLayout(arg string) (layout.Layout, error) {
	f, err := os.Open(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Parse(arg)
		}
		return layout.Layout{}, Error.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	logger.Debug("loading layout file", "path", arg)
	return layout.Load(f)
}
