package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rulesaide/internal/assist"
	"rulesaide/internal/envelope"
	"rulesaide/internal/reminder"
	"rulesaide/internal/store"
)

func replayCmd() *cobra.Command {
	var observer string
	var useDB bool
	cmd := &cobra.Command{
		Use:   "replay <file.jsonl>",
		Short: "Run recorded envelopes through the assistant and print the replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0], observer, useDB)
		},
	}
	cmd.Flags().StringVar(&observer, "as", "gm", "Observer id the replay acts as")
	cmd.Flags().BoolVar(&useDB, "db", false, "Record grudges and encumbrance in the project database")
	return cmd
}

func runReplay(path, observer string, useDB bool) error {
	ctx := context.Background()

	deps, err := loadAssistantDeps()
	if err != nil {
		return err
	}

	var db store.Store
	if useDB {
		db, err = openDB(ctx, deps.cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
	}

	jr := openJournal(deps.cfg, "replay")
	if jr != nil {
		defer jr.Close()
	}

	a, err := deps.newAssistant(db, jr, log.New(os.Stderr, "rulesaide: ", log.LstdFlags))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out := json.NewEncoder(os.Stdout)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		reply, err := replayFrame(ctx, a, observer, []byte(raw))
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if reply == nil {
			continue
		}
		if err := out.Encode(reply); err != nil {
			return fmt.Errorf("encoding reply: %w", err)
		}
	}
	return sc.Err()
}

func replayFrame(ctx context.Context, a *assist.Assistant, observer string, raw []byte) (any, error) {
	v, err := envelope.Decode(raw)
	if err != nil {
		return envelope.NewError(err), nil
	}

	switch frame := v.(type) {
	case *envelope.Message:
		reaction, err := a.HandleMessage(ctx, frame.ToAssist(observer))
		if err != nil || reaction == nil {
			return nil, err
		}
		return envelope.ReactionReply{Type: envelope.TypeReaction, Reaction: reaction}, nil
	case *envelope.Attack:
		outcome, err := a.CheckAttack(ctx, frame.ToAssist())
		if err != nil {
			return envelope.NewError(err), nil
		}
		reply := envelope.OutcomeReply{Type: envelope.TypeOutcome, Outcome: outcome}
		if !outcome.Allowed {
			reply.Reminders = a.RemindersFor(reminder.TriggerRangeViolation)
		}
		return reply, nil
	case *envelope.Encumbrance:
		result, err := a.UpdateEncumbrance(ctx, frame.Actor, frame.Items, frame.Capacity)
		if err != nil {
			return envelope.NewError(err), nil
		}
		return envelope.EncumbranceReply{Type: envelope.TypeEncumbrance, Result: result}, nil
	default:
		return nil, nil
	}
}
