package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/lexer"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// shellPrompt is printed before each line is read.
const shellPrompt = "calc> "

var shellColor string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Lex expressions interactively",
	Long: `Read expressions line by line and print each line's tokens or its
lexical error. Each line is lexed on its own as <stdin>. End input with
Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().StringVar(&shellColor, "color", "", "Color output: auto, always, never (default from config)")
}

func runShell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := currentLogger()

	mode := shellColor
	if mode == "" {
		mode = currentSettings().Color
	}
	s := newStyles(colorEnabled(mode, out))

	lines := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, shellPrompt)
		if !lines.Scan() {
			fmt.Fprintln(out)
			break
		}

		text := lines.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		tokens, err := lexer.Run(types.DefaultFilename, text)
		if err != nil {
			var lexErr *types.Error
			if errors.As(err, &lexErr) {
				fmt.Fprintln(out, s.formatError(lexErr))
				log.Debug("lexical error", zap.String("line", text), zap.Stringer("kind", lexErr.Kind))
				continue
			}
			return err
		}
		fmt.Fprintln(out, s.formatTokens(tokens))
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
