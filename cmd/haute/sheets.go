package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/digitalhaute/internal/cli"
	"github.com/Veraticus/digitalhaute/internal/sheets"
)

func sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Google Sheets integration",
	}

	var (
		clientID     string
		clientSecret string
		tokenFile    string
	)
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Sheets",
		Long: `Run the OAuth2 consent flow and save the refresh token to the config
file. Create an OAuth client of type "Desktop app" in the Google Cloud
console and pass its id and secret, or set sheets.client_id and
sheets.client_secret.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clientID == "" {
				clientID = viper.GetString("sheets.client_id")
			}
			if clientSecret == "" {
				clientSecret = viper.GetString("sheets.client_secret")
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OAuth2 client ID and secret are required")
			}

			token, err := sheets.GetOrCreateToken(cmd.Context(), sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
				Prompt: func(authURL string) {
					cmd.Println(cli.FormatInfo("Opening your browser to authorize Google Sheets..."))
					cmd.Println(cli.SubtleStyle.Render(authURL))
					if err := openBrowser(authURL); err != nil {
						slog.Debug("Failed to open browser", "error", err)
					}
				},
			})
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}
			if token.RefreshToken == "" {
				return fmt.Errorf("no refresh token received; revoke the app's access and try again")
			}

			viper.Set("sheets.client_id", clientID)
			viper.Set("sheets.client_secret", clientSecret)
			viper.Set("sheets.refresh_token", token.RefreshToken)
			if err := saveConfig(); err != nil {
				return err
			}

			cmd.Println(cli.FormatSuccess("Google Sheets authorized"))
			return nil
		},
	}
	auth.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	auth.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	auth.Flags().StringVar(&tokenFile, "token-file", "", "also save the token to this file")
	cmd.AddCommand(auth)
	return cmd
}
