package cli

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	perr "claimboard/internal/platform/errors"

	admin "claimboard/internal/services/api/admin/http"
	lbdom "claimboard/internal/services/leaderboard/domain"
	ledgerdom "claimboard/internal/services/ledger/domain"
	memdom "claimboard/internal/services/members/domain"
)

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, perr.InvalidArgf("participant id must be a positive integer, got %q", s)
	}
	return id, nil
}

func engineCmd(a *app) *cobra.Command {
	c := &cobra.Command{Use: "engine", Short: "Inspect or change the claim engine state"}

	c.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the engine state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var res admin.EngineResponse
			if err := a.client().Do(cmd.Context(), http.MethodGet, "/admin/engine", nil, nil, &res); err != nil {
				return err
			}
			return a.printer().print(res, row{"STATE"}, []row{{res.State}})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:       "set running|paused|stopped",
		Short:     "Change the engine state",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"running", "paused", "stopped"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var res admin.EngineResponse
			in := admin.EngineInput{State: args[0]}
			if err := a.client().Do(cmd.Context(), http.MethodPut, "/admin/engine", nil, in, &res); err != nil {
				return err
			}
			return a.printer().print(res, row{"STATE", "PREVIOUS"}, []row{{res.State, res.Previous}})
		},
	})
	return c
}

func leaderboardCmd(a *app) *cobra.Command {
	c := &cobra.Command{Use: "leaderboard", Aliases: []string{"lb"}, Short: "Read or reset scores"}

	var limit int
	top := &cobra.Command{
		Use:   "top",
		Short: "List the highest scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var res []lbdom.Entry
			q := url.Values{"limit": {strconv.Itoa(limit)}}
			if err := a.client().Do(cmd.Context(), http.MethodGet, "/leaderboard", q, nil, &res); err != nil {
				return err
			}
			rows := make([]row, 0, len(res))
			for _, e := range res {
				rows = append(rows, row{strconv.Itoa(e.Rank), strconv.FormatUint(e.Participant, 10), strconv.FormatInt(e.Score, 10)})
			}
			return a.printer().print(res, row{"RANK", "PARTICIPANT", "SCORE"}, rows)
		},
	}
	top.Flags().IntVarP(&limit, "limit", "n", 10, "entries to show (1-100)")

	show := &cobra.Command{
		Use:   "show <participant>",
		Short: "Show one participant's score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var res lbdom.Entry
			if err := a.client().Do(cmd.Context(), http.MethodGet, "/leaderboard/"+strconv.FormatUint(id, 10), nil, nil, &res); err != nil {
				return err
			}
			return a.printer().print(res, row{"PARTICIPANT", "SCORE"}, []row{{strconv.FormatUint(res.Participant, 10), strconv.FormatInt(res.Score, 10)}})
		},
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear every score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return perr.InvalidArgf("reset clears the whole leaderboard; pass --yes to confirm")
			}
			var res lbdom.ResetResult
			if err := a.client().Do(cmd.Context(), http.MethodDelete, "/leaderboard", nil, nil, &res); err != nil {
				return err
			}
			return a.printer().print(res, row{"CLEARED"}, []row{{strconv.FormatInt(res.Cleared, 10)}})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	c.AddCommand(top, show, reset)
	return c
}

func memberRows(m memdom.Member) []row {
	return []row{{strconv.FormatUint(m.ID, 10), m.Name, strings.Join(m.Roles, ",")}}
}

var memberHeader = row{"ID", "NAME", "ROLES"}

func memberCmd(a *app) *cobra.Command {
	c := &cobra.Command{Use: "member", Aliases: []string{"members"}, Short: "Manage the member directory"}

	var (
		name  string
		roles []string
	)
	put := &cobra.Command{
		Use:   "put <participant>",
		Short: "Create or replace a member record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var res memdom.Member
			in := memdom.PutInput{Name: name, Roles: roles}
			if err := a.client().Do(cmd.Context(), http.MethodPut, "/members/"+strconv.FormatUint(id, 10), nil, in, &res); err != nil {
				return err
			}
			return a.printer().print(res, memberHeader, memberRows(res))
		},
	}
	put.Flags().StringVar(&name, "name", "", "display name")
	put.Flags().StringSliceVar(&roles, "role", nil, "role id, repeatable")

	get := &cobra.Command{
		Use:   "get <participant>",
		Short: "Show a member record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var res memdom.Member
			if err := a.client().Do(cmd.Context(), http.MethodGet, "/members/"+strconv.FormatUint(id, 10), nil, nil, &res); err != nil {
				return err
			}
			return a.printer().print(res, memberHeader, memberRows(res))
		},
	}

	del := &cobra.Command{
		Use:   "delete <participant>",
		Short: "Remove a member record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.client().Do(cmd.Context(), http.MethodDelete, "/members/"+strconv.FormatUint(id, 10), nil, nil, nil)
		},
	}

	c.AddCommand(put, get, del)
	return c
}

func ledgerCmd(a *app) *cobra.Command {
	c := &cobra.Command{Use: "ledger", Short: "Inspect the claim ledger"}

	var (
		limit   int
		outcome string
	)
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List the newest ledger entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{"limit": {strconv.Itoa(limit)}}
			if outcome != "" {
				q.Set("outcome", outcome)
			}
			var res []ledgerdom.Entry
			if err := a.client().Do(cmd.Context(), http.MethodGet, "/ledger", q, nil, &res); err != nil {
				return err
			}
			rows := make([]row, 0, len(res))
			for _, e := range res {
				rows = append(rows, row{
					e.RecordedAt.Format(time.RFC3339),
					e.EventID,
					strconv.FormatUint(e.Participant, 10),
					e.Tier,
					strconv.FormatInt(e.Delta, 10),
					e.Outcome,
				})
			}
			return a.printer().print(res, row{"AT", "EVENT", "PARTICIPANT", "TIER", "DELTA", "OUTCOME"}, rows)
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 50, "entries to show (1-500)")
	recent.Flags().StringVar(&outcome, "outcome", "", "only entries with this outcome")

	c.AddCommand(recent)
	return c
}

func markersCmd(a *app) *cobra.Command {
	c := &cobra.Command{Use: "markers", Short: "Maintain dedup markers"}

	var limit int
	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired markers (postgres backend only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var res admin.SweepResponse
			q := url.Values{"limit": {strconv.Itoa(limit)}}
			if err := a.client().Do(cmd.Context(), http.MethodPost, "/admin/markers/sweep", q, nil, &res); err != nil {
				return err
			}
			return a.printer().print(res, row{"REMOVED"}, []row{{strconv.FormatInt(res.Removed, 10)}})
		},
	}
	sweep.Flags().IntVar(&limit, "limit", 1000, "max markers removed (1-10000)")

	c.AddCommand(sweep)
	return c
}
