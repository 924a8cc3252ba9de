package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/config"
	"rulesaide/internal/store"
)

// tableQueries are run when `query sql` is given no query text. Filters are
// appended only for the named parameters that were bound.
var tableQueries = map[string]struct {
	columns string
	filters []string
	order   string
}{
	"grudges": {
		columns: "victim, attacker, amount, critical, source_message, recorded_at",
		filters: []string{"victim_normalized = :victim", "attacker = :attacker"},
		order:   "recorded_at DESC",
	},
	"encumbrance": {
		columns: "actor, load, capacity, level, updated_at",
		filters: []string{"actor_normalized = :actor"},
		order:   "actor",
	},
}

func querySQLCmd() *cobra.Command {
	var (
		paramPairs []string
		table      string
		victim     string
		attacker   string
		actor      string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "sql [query]",
		Short: "Execute a SQL query against the grudge and encumbrance tables",
		Long: `Execute a SQL query. Named parameters such as :victim, :attacker and
:actor are bound from flags; victim and actor names are normalized the same
way the stored *_normalized columns are. Without a query, --table selects a
ready-made listing of grudges or encumbrance.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			named, positional, err := parseParamPairs(paramPairs)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("victim") {
				named["victim"] = store.Normalize(victim)
			}
			if cmd.Flags().Changed("attacker") {
				named["attacker"] = strings.TrimSpace(attacker)
			}
			if cmd.Flags().Changed("actor") {
				named["actor"] = store.Normalize(actor)
			}

			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				query, err = tableQuery(table, named, limit)
				if err != nil {
					return err
				}
				if limit > 0 {
					named["limit"] = limit
				}
			}
			return runSQL(query, named, positional)
		},
	}
	cmd.Flags().StringArrayVar(&paramPairs, "param", nil, "Query parameter as key=value (repeatable); numeric keys are positional")
	cmd.Flags().StringVar(&table, "table", "grudges", "Table listed when no query is given (grudges|encumbrance)")
	cmd.Flags().StringVar(&victim, "victim", "", "Bind :victim, normalized like grudges.victim_normalized")
	cmd.Flags().StringVar(&attacker, "attacker", "", "Bind :attacker")
	cmd.Flags().StringVar(&actor, "actor", "", "Bind :actor, normalized like encumbrance.actor_normalized")
	cmd.Flags().IntVar(&limit, "limit", 0, "Row limit for --table listings (0 for all)")
	return cmd
}

func runSQL(query string, named, positional map[string]any) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(projectFile)
	if err != nil {
		return err
	}
	driver, err := store.DriverFor(cfg.Database.DSN)
	if err != nil {
		return err
	}

	query, params, err := bindNamed(query, driver, named, positional)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	rows, err := db.RunSQL(ctx, query, params)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

// tableQuery builds the listing for table, filtering on whichever of its
// named parameters are bound.
func tableQuery(table string, named map[string]any, limit int) (string, error) {
	spec, ok := tableQueries[strings.ToLower(strings.TrimSpace(table))]
	if !ok {
		return "", fmt.Errorf("unknown table %q: expected grudges or encumbrance", table)
	}

	var where []string
	for _, filter := range spec.filters {
		name := filter[strings.LastIndex(filter, ":")+1:]
		if _, bound := named[name]; bound {
			where = append(where, filter)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", spec.columns, strings.ToLower(strings.TrimSpace(table)))
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY " + spec.order)
	if limit > 0 {
		b.WriteString(" LIMIT :limit")
	}
	return b.String(), nil
}

// namedParam skips "::" so postgres casts survive.
var namedParam = regexp.MustCompile(`(^|[^:]):([a-z_][a-z0-9_]*)`)

// bindNamed rewrites :name placeholders into the driver's numbered form and
// returns params keyed "1", "2", ... as RunSQL expects. A query without
// named placeholders keeps its positional params untouched.
func bindNamed(query string, driver store.Driver, named, positional map[string]any) (string, map[string]any, error) {
	matches := namedParam.FindAllStringSubmatchIndex(query, -1)
	if len(matches) == 0 {
		return query, positional, nil
	}
	if len(positional) > 0 {
		return "", nil, fmt.Errorf("cannot mix positional and named parameters")
	}

	index := make(map[string]int)
	params := make(map[string]any)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		nameStart, nameEnd := m[4], m[5]
		name := query[nameStart:nameEnd]
		value, ok := named[name]
		if !ok {
			return "", nil, fmt.Errorf("unbound parameter :%s", name)
		}
		n, seen := index[name]
		if !seen {
			n = len(index) + 1
			index[name] = n
			params[strconv.Itoa(n)] = value
		}

		b.WriteString(query[last : nameStart-1])
		if driver == store.DriverPostgres {
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteString("?" + strconv.Itoa(n))
		}
		last = nameEnd
	}
	b.WriteString(query[last:])
	return b.String(), params, nil
}

// parseParamPairs splits key=value pairs into named params and positional
// params keyed by their number.
func parseParamPairs(pairs []string) (named, positional map[string]any, err error) {
	named = make(map[string]any)
	positional = make(map[string]any)
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid param %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, nil, fmt.Errorf("invalid param %q: empty key", pair)
		}
		value = strings.TrimSpace(value)
		if _, err := strconv.Atoi(key); err == nil {
			positional[key] = value
			continue
		}
		named[strings.TrimPrefix(key, ":")] = value
	}
	return named, positional, nil
}
