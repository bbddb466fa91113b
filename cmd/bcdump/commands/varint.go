package commands

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	bytecursor "github.com/Akron/bytecursor-go"
)

func newVarintCmd() *cobra.Command {
	var signed bool

	cmd := &cobra.Command{
		Use:   "varint <hex>",
		Short: "Decode a run of LEB128 varints from hex",
		Long: `Varint decodes consecutive unsigned 32-bit LEB128 varints from hex input
until the input is exhausted. With --zigzag the values are zigzag decoded.

Spaces and colons in the input are ignored: "ac02 00", "ac:02:00".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clean := strings.NewReplacer(" ", "", ":", "").Replace(strings.Join(args, ""))
			buf, err := hex.DecodeString(clean)
			if err != nil {
				return Error.New("invalid hex input: %v", err)
			}

			c := bytecursor.New(buf)
			var rows [][]string
			for !c.IsEnd() {
				start := c.Pos()
				var text string
				if signed {
					v, err := c.ReadVarint32()
					if err != nil {
						return err
					}
					text = strconv.FormatInt(int64(v), 10)
				} else {
					v, err := c.ReadUvarint32()
					if err != nil {
						return err
					}
					text = strconv.FormatUint(uint64(v), 10)
				}
				rows = append(rows, []string{strconv.Itoa(start), hex.EncodeToString(buf[start:c.Pos()]), text})
			}

			printTable(cmd.OutOrStdout(), []string{"offset", "bytes", "value"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&signed, "zigzag", "z", false, "zigzag decode signed values")
	return cmd
}
