package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/statekey/pkg/cidutil"
	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/key"
	"github.com/agenthands/statekey/pkg/transform"
	"github.com/agenthands/statekey/pkg/uref"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"
)

const stdinArg = "-"

// printKey writes the display form followed by the canonical bytes.
func printKey(w io.Writer, k key.Key) {
	fmt.Fprintln(w, k)
	fmt.Fprintln(w, hex.EncodeToString(k.ToBytes()))
}

func parseHash(s string) (key.Key, error) {
	k, ok := key.ParseHash(s)
	if !ok {
		return key.Key{}, fmt.Errorf("%w: cannot parse hash %q", core.ErrInvalidInput, s)
	}
	return k, nil
}

// readBytes decodes a hex argument, or hex read from stdin when arg is "-".
func readBytes(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		arg = strings.TrimSpace(string(data))
	}
	b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex input: %v", core.ErrInvalidInput, err)
	}
	return b, nil
}

func (a *app) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hash <hex>",
		Short:   "Build a Hash key",
		Example: "  statekey hash 0x0101010101010101010101010101010101010101010101010101010101010101",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseHash(args[0])
			if err != nil {
				return err
			}
			printKey(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

func (a *app) newURefCmd() *cobra.Command {
	var rights string
	cmd := &cobra.Command{
		Use:   "uref <hex>",
		Short: "Build a Reference key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := uref.ParseAccessRights(rights)
			if err != nil {
				return err
			}
			k, ok := key.ParseURef(args[0], r)
			if !ok {
				return fmt.Errorf("%w: cannot parse reference %q", core.ErrInvalidInput, args[0])
			}
			printKey(cmd.OutOrStdout(), k)
			return nil
		},
	}
	cmd.Flags().StringVar(&rights, "rights", uref.AccessRightsReadAddWrite.String(), "access rights, e.g. READ or READ_WRITE")
	return cmd
}

func (a *app) newLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "local <seed-hex> <key-hash-hex>",
		Short: "Build a Local key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := key.ParseLocal(args[0], args[1])
			if !ok {
				return fmt.Errorf("%w: cannot parse local key %q %q", core.ErrInvalidInput, args[0], args[1])
			}
			printKey(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

func (a *app) newDecodeCmd() *cobra.Command {
	var seq, normalize bool
	cmd := &cobra.Command{
		Use:   "decode <hex|->",
		Short: "Decode a canonical key, or a key sequence with --seq",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readBytes(cmd, args[0])
			if err != nil {
				return err
			}

			tr, err := transform.New(a.cfg.Transform)
			if err != nil {
				return err
			}
			plain, err := tr.Decode(raw)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"transform": tr.Name(),
				"stored":    len(raw),
				"plain":     len(plain),
			}).Debug("input unwrapped")

			var keys []key.Key
			if seq {
				keys, err = key.DeserializeSlice(plain, a.cfg.Limits.MaxSequenceLen)
			} else {
				var k key.Key
				k, err = key.Deserialize(plain)
				keys = []key.Key{k}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				if normalize {
					k = k.Normalize()
				}
				fmt.Fprintln(out, k)
			}
			a.log.WithField("keys", len(keys)).Debug("decoded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&seq, "seq", false, "decode a u32-prefixed key sequence")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "strip access rights from references")
	return cmd
}

func (a *app) newEncodeCmd() *cobra.Command {
	var kind, rights string
	cmd := &cobra.Command{
		Use:   "encode <hex> [<hex>...]",
		Short: "Encode keys as a key sequence",
		Long: "Encode parses every argument as a key of --kind and prints the\n" +
			"canonical sequence encoding as hex. Local keys take seed and key-hash pairs.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(kind, rights, args)
			if err != nil {
				return err
			}

			tr, err := transform.New(a.cfg.Transform)
			if err != nil {
				return err
			}
			plain := key.SliceToBytes(keys)
			stored, err := tr.Encode(plain)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"keys":      len(keys),
				"transform": tr.Name(),
				"plain":     len(plain),
				"stored":    len(stored),
			}).Debug("encoded")

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(stored))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "hash", "key kind: hash, uref or local")
	cmd.Flags().StringVar(&rights, "rights", uref.AccessRightsReadAddWrite.String(), "access rights for --kind uref")
	return cmd
}

func parseKeys(kind, rights string, args []string) ([]key.Key, error) {
	switch kind {
	case "hash":
		keys := make([]key.Key, 0, len(args))
		for _, s := range args {
			k, err := parseHash(s)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
		return keys, nil
	case "uref":
		r, err := uref.ParseAccessRights(rights)
		if err != nil {
			return nil, err
		}
		keys := make([]key.Key, 0, len(args))
		for _, s := range args {
			k, ok := key.ParseURef(s, r)
			if !ok {
				return nil, fmt.Errorf("%w: cannot parse reference %q", core.ErrInvalidInput, s)
			}
			keys = append(keys, k)
		}
		return keys, nil
	case "local":
		if len(args)%2 != 0 {
			return nil, fmt.Errorf("%w: local keys need seed and key-hash pairs, got %d arguments", core.ErrInvalidInput, len(args))
		}
		keys := make([]key.Key, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			k, ok := key.ParseLocal(args[i], args[i+1])
			if !ok {
				return nil, fmt.Errorf("%w: cannot parse local key %q %q", core.ErrInvalidInput, args[i], args[i+1])
			}
			keys = append(keys, k)
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("%w: unknown key kind %q", core.ErrInvalidInput, kind)
	}
}

func (a *app) newCIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cid <hex>",
		Short: "Print the CIDv1 of a Hash key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseHash(args[0])
			if err != nil {
				return err
			}
			c, err := cidutil.CIDFromHashKey(k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func (a *app) newFromCIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-cid <cid>",
		Short: "Recover the Hash key from a sha2-256 CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := cidutil.ParseCID(args[0])
			if err != nil {
				return err
			}
			printKey(cmd.OutOrStdout(), k)
			return nil
		},
	}
}
