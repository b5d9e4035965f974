package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"dorm-services/internal/pkg/password"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// hashPasswordCmd prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
// The password is read from the first line of stdin so it stays out of shell history.
func hashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an administrator password read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
			}

			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}

			hash, err := password.HashPasswordWithCost(strings.TrimRight(line, "\r\n"), cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", password.DefaultCost, "bcrypt cost")

	return cmd
}
