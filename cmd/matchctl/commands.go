package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/foodbridge/match-api/internal/api"
	"github.com/foodbridge/match-api/internal/config"
	"github.com/foodbridge/match-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultTokenLifetimeMinutes = 60

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOODBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Development client for the donation match API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://localhost:8080", "match API base URL")
	root.PersistentFlags().String("token", "", "bearer token for API calls")
	root.PersistentFlags().Bool("json", false, "print raw JSON")
	_ = v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("token", root.PersistentFlags().Lookup("token"))
	_ = v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(tokenCmd(v), pollCmd(v))
	return root
}

func tokenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(v.GetString("user"))
			if err != nil {
				return fmt.Errorf("--user must be a UUID: %w", err)
			}
			lifetime := v.GetInt("auth.token_lifetime_minutes")
			if lifetime <= 0 {
				lifetime = defaultTokenLifetimeMinutes
			}
			svc, err := auth.NewJWTService(config.AuthConfig{
				JWTSecret:            v.GetString("auth.jwt_secret"),
				TokenLifetimeMinutes: lifetime,
			})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().String("user", "", "user ID to place in the token subject")
	cmd.Flags().String("secret", "", "JWT signing secret (defaults to FOODBRIDGE_AUTH_JWT_SECRET)")
	_ = cmd.MarkFlagRequired("user")
	_ = v.BindPFlag("user", cmd.Flags().Lookup("user"))
	_ = v.BindPFlag("auth.jwt_secret", cmd.Flags().Lookup("secret"))
	return cmd
}

func pollCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "poll <task-id>",
		Short: "Fetch a match task result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("task id must be a UUID: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			result, raw, err := fetchTask(ctx, v.GetString("server"), v.GetString("token"), taskID)
			if err != nil {
				return err
			}
			if v.GetBool("json") {
				_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
				return err
			}
			renderTask(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// fetchTask returns the decoded result and the raw body. A 404 with a
// NOT_FOUND body is a valid result, not an error.
func fetchTask(ctx context.Context, server, token string, taskID uuid.UUID) (*api.TaskResultResponse, []byte, error) {
	url := strings.TrimRight(server, "/") + "/api/tasks/" + taskID.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		return nil, nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}

	var result api.TaskResultResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, nil, fmt.Errorf("decode task result: %w", err)
	}
	return &result, raw, nil
}

func renderTask(w io.Writer, result *api.TaskResultResponse) {
	fmt.Fprintf(w, "Task %s: %s\n", result.TaskID, result.Status)
	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
	}
	if result.Error != "" {
		fmt.Fprintln(w, "Error:", result.Error)
	}
	if len(result.RecommendedRecipients) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Recipient", "Name", "Contact", "Address", "Reason"})
	for i, r := range result.RecommendedRecipients {
		tw.AppendRow(table.Row{i + 1, r.RecipientID, r.Name, r.Contact, r.Address, r.Reason})
	}
	tw.Render()
}
