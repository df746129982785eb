package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/affection"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/battle"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/progression"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/regeneration"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/resentment"
	battlesession "github.com/gamewaifu/waifu-api/internal/repositories/battle_session"
)

// operatorCommands expose each game operation for support and scripted use
func operatorCommands() []*cobra.Command {
	return []*cobra.Command{
		clickCmd(),
		levelUpCmd(),
		allocateCmd(),
		bindCmd(),
		battleCmd(),
		sweepCmd(),
		resentCmd(),
		regenCmd(),
		restoreCmd(),
		pruneSessionsCmd(),
	}
}

func printer(w io.Writer) func(format string, args ...any) {
	p := message.NewPrinter(language.English)
	return func(format string, args ...any) {
		_, _ = p.Fprintf(w, format, args...)
	}
}

// openApp builds the app for one operator command; tests swap it for mocks
var openApp = withApp

func run(fn func(ctx context.Context, a *app, out func(string, ...any)) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		out := printer(cmd.OutOrStdout())
		return openApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return fn(ctx, a, out)
		})
	}
}

func clickCmd() *cobra.Command {
	var input affection.RecordClickSessionInput
	cmd := &cobra.Command{
		Use:   "click",
		Short: "Record a batch of clicks on a character",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.affection.RecordClickSession(ctx, &input)
			if err != nil {
				return err
			}
			out("session %s: +%d love, now %d (resentful=%t lost=%t)\n",
				res.SessionID, res.LoveGain, res.NewLove, res.IsResentful, res.IsLost)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning user ID")
	cmd.Flags().StringVar(&input.CharacterID, "character", "", "character ID")
	cmd.Flags().IntVar(&input.ClickCount, "count", 1, "number of clicks in the batch")
	cmd.Flags().StringVar(&input.Token, "token", "", "batch token for replay rejection")
	return cmd
}

func levelUpCmd() *cobra.Command {
	var input progression.LevelUpInput
	cmd := &cobra.Command{
		Use:   "level-up",
		Short: "Spend love to raise a character one level",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.progression.LevelUp(ctx, &input)
			if err != nil {
				return err
			}
			out("level %d: spent %d love, %d left, %d stat points, health %d, magic %d\n",
				res.NewLevel, res.LoveSpent, res.RemainingLove, res.StatPoints, res.NewMaxHealth, res.NewMaxMagic)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.CharacterID, "character", "", "character ID")
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning user ID (optional)")
	return cmd
}

func allocateCmd() *cobra.Command {
	var input progression.AllocateStatPointsInput
	cmd := &cobra.Command{
		Use:     "allocate",
		Short:   "Spend unspent stat points",
		Example: "  waifu-api allocate --owner u1 --character c1 --points attack=3,defense=2",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.progression.AllocateStatPoints(ctx, &input)
			if err != nil {
				return err
			}
			c := res.Character
			out("%s: attack %d, defense %d, speed %d, magic %d, %d points left\n",
				c.ID, c.Attack, c.Defense, c.Speed, c.Magic, c.StatPoints)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.CharacterID, "character", "", "character ID")
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning user ID")
	cmd.Flags().StringToIntVar(&input.Points, "points", nil, "stat=points pairs")
	return cmd
}

func bindCmd() *cobra.Command {
	var input progression.BindCharacterInput
	var rarity string
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Give a character template to a user",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			input.Rarity = entities.Rarity(rarity)
			res, err := a.progression.BindCharacter(ctx, &input)
			if err != nil {
				return err
			}
			out("bound %s (%s) to %s\n", res.Character.ID, res.Character.Rarity, res.Character.OwnerID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning user ID")
	cmd.Flags().StringVar(&input.TemplateID, "template", "", "character template ID")
	cmd.Flags().StringVar(&rarity, "rarity", string(entities.RarityBlue), "blue, purple or golden")
	return cmd
}

func battleCmd() *cobra.Command {
	var input battle.ExecuteBattleInput
	var find bool
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Run an automatic battle",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			if find {
				found, err := a.battle.FindOpponent(ctx, &battle.FindOpponentInput{
					OwnerID:     input.OwnerID,
					CharacterID: input.AttackerID,
				})
				if err != nil {
					return err
				}
				input.DefenderID = found.Opponent.ID
			}

			res, err := a.battle.ExecuteBattle(ctx, &input)
			if err != nil {
				return err
			}
			for _, ev := range res.Log {
				out("turn %d: %s %s %s for %d%s\n", ev.Turn, ev.ActorID, ev.Action, ev.TargetID, ev.Damage, critMark(ev.WasCritical))
			}
			winner := "draw"
			if res.WinnerID != nil {
				winner = *res.WinnerID
			}
			out("battle %s: %s after %d turns\n", res.BattleID, winner, res.Turns)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "challenger's owner ID")
	cmd.Flags().StringVar(&input.AttackerID, "attacker", "", "challenger character ID")
	cmd.Flags().StringVar(&input.DefenderID, "defender", "", "opponent character ID")
	cmd.Flags().BoolVar(&find, "find", false, "pick a random opponent in level range")
	return cmd
}

func critMark(crit bool) string {
	if crit {
		return " (critical)"
	}
	return ""
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Settle resentful characters now",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.resentment.Sweep(ctx, &resentment.SweepInput{})
			if err != nil {
				return err
			}
			out("%d characters transitioned\n", res.Transitioned)
			return nil
		}),
	}
}

func resentCmd() *cobra.Command {
	var input resentment.EnterResentfulInput
	cmd := &cobra.Command{
		Use:   "resent",
		Short: "Put a character into the resentful state",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.resentment.EnterResentful(ctx, &input)
			if err != nil {
				return err
			}
			if !res.Entered {
				out("%s was already resentful\n", res.Character.ID)
				return nil
			}
			out("%s is resentful until level %d\n", res.Character.ID, *res.Character.ResentmentBaseLevel+a.cfg.Game.Resentment.RecoveryLevels)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.CharacterID, "character", "", "character ID")
	return cmd
}

func regenCmd() *cobra.Command {
	var healthOnly, magicOnly bool
	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Run health and magic regeneration now",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			if !magicOnly {
				res, err := a.regeneration.RegenerateHealth(ctx, &regeneration.RegenerateHealthInput{})
				if err != nil {
					return err
				}
				out("health: %d regenerated, %d stamped\n", res.Regenerated, res.Stamped)
			}
			if !healthOnly {
				res, err := a.regeneration.RegenerateMagic(ctx, &regeneration.RegenerateMagicInput{})
				if err != nil {
					return err
				}
				out("magic: %d regenerated\n", res.Updated)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&healthOnly, "health", false, "only regenerate health")
	cmd.Flags().BoolVar(&magicOnly, "magic", false, "only regenerate magic")
	cmd.MarkFlagsMutuallyExclusive("health", "magic")
	return cmd
}

func restoreCmd() *cobra.Command {
	var input regeneration.RestoreInput
	var magic bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a fixed amount of health or magic",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			restore := a.regeneration.RestoreHealth
			if magic {
				restore = a.regeneration.RestoreMagic
			}
			res, err := restore(ctx, &input)
			if err != nil {
				return err
			}
			out("%s: restored %d, health %d/%d, magic %d/%d\n", res.Character.ID, res.Restored,
				res.Character.CurrentHealth, res.Character.MaxHealth, res.Character.CurrentMagic, res.Character.MaxMagic)
			return nil
		}),
	}
	cmd.Flags().StringVar(&input.CharacterID, "character", "", "character ID")
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning user ID (optional)")
	cmd.Flags().IntVar(&input.Amount, "amount", 0, "amount to restore")
	cmd.Flags().BoolVar(&magic, "magic", false, "restore magic instead of health")
	return cmd
}

func pruneSessionsCmd() *cobra.Command {
	var input battlesession.PruneInput
	cmd := &cobra.Command{
		Use:   "prune-sessions",
		Short: "Remove unreadable battle sessions and dangling character locks",
		RunE: run(func(ctx context.Context, a *app, out func(string, ...any)) error {
			res, err := a.sessions.Prune(ctx, input)
			if err != nil {
				return err
			}
			for _, key := range res.Stale {
				out("stale: %s\n", key)
			}
			if input.DryRun {
				out("checked %d keys, %d stale (dry run)\n", res.Checked, len(res.Stale))
				return nil
			}
			out("checked %d keys, deleted %d\n", res.Checked, res.Deleted)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&input.DryRun, "dry-run", false, "only report stale keys")
	return cmd
}
