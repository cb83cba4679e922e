package commands

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cppla/postboard/config"
)

const appKeyBytes = 32

func newKeyGenerateCommand() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "key:generate",
		Short: "Generate APP_KEY and store it in the .env file",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := generateKey()
			if err != nil {
				return err
			}
			if show {
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			}

			path := config.EnvFile()
			if err := writeEnvValue(path, "APP_KEY", key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Application key set in %s.\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the key instead of writing it")
	return cmd
}

func generateKey() (string, error) {
	b := make([]byte, appKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// writeEnvValue sets key in the dotenv file at path, creating it if needed.
// godotenv rewrites the file sorted and without comments.
func writeEnvValue(path, key, value string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		env = map[string]string{}
	}
	env[key] = value
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
