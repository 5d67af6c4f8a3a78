// Package bot dispatches parsed chat commands to the economy,
// fishing and shop components and formats the response lines the
// console writer delivers.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Yizzii/fishbot/internal/console"
	"github.com/Yizzii/fishbot/internal/economy"
	"github.com/Yizzii/fishbot/internal/fish"
	"github.com/Yizzii/fishbot/internal/ratelimit"
	"github.com/Yizzii/fishbot/internal/shop"
	"github.com/Yizzii/fishbot/internal/store"
)

type Module struct {
	store      *store.Store
	ledger     *economy.Ledger
	resolver   *fish.Resolver
	shop       *shop.Shop
	catchLog   *store.CatchLog
	limiter    *ratelimit.Limiter
	privileged string
}

// New wires the dispatcher. privileged is the username exempt from
// cooldowns and allowed to read global stats; empty means nobody.
// catchLog may be nil to disable the leaderboard.
func New(
	st *store.Store,
	ledger *economy.Ledger,
	resolver *fish.Resolver,
	sh *shop.Shop,
	catchLog *store.CatchLog,
	limiter *ratelimit.Limiter,
	privileged string,
) *Module {
	return &Module{
		store:      st,
		ledger:     ledger,
		resolver:   resolver,
		shop:       sh,
		catchLog:   catchLog,
		limiter:    limiter,
		privileged: store.Key(privileged),
	}
}

// Dispatch resolves one chat command into response lines. User
// mistakes come back as lines; a non-nil error means storage or
// catalog trouble and the caller should treat it as fatal. A
// cooldown block yields no lines at all.
func (m *Module) Dispatch(ctx context.Context, cmd console.ChatCommand) ([]string, error) {
	if !knownCommand(cmd.Command) {
		return nil, nil
	}

	if !m.isPrivileged(cmd.Username) {
		if ok, wait := m.limiter.Try(cmd.Username, cmd.Command); !ok {
			slog.Debug("command on cooldown",
				"user", cmd.Username, "command", cmd.Command, "wait", wait)
			return nil, nil
		}
	}

	slog.Info("executing command",
		"user", cmd.Username, "command", cmd.Command, "args", cmd.Args)

	switch cmd.Command {
	case cmdFish:
		return m.handleFish(ctx, cmd.Username)
	case cmdGamble:
		return m.handleGamble(cmd.Username, cmd.Args)
	case cmdBalance:
		return m.handleBalance(cmd.Username)
	case cmdShop:
		return m.handleShop(cmd.Username, cmd.Args)
	case cmdGiveMoney:
		return m.handleGiveMoney(cmd.Username, cmd.Args)
	case cmdStats:
		return m.handleStats(cmd.Username)
	case cmdGlobalStats:
		return m.handleGlobalStats(cmd.Username)
	case cmdLeaderboard:
		return m.handleLeaderboard(ctx)
	case cmdCommands:
		return []string{"[COMMANDS] > " + strings.Join(commandList, ", ")}, nil
	}
	return nil, nil
}

func (m *Module) isPrivileged(username string) bool {
	return m.privileged != "" && store.Key(username) == m.privileged
}

func (m *Module) handleFish(ctx context.Context, username string) ([]string, error) {
	global, err := m.store.LoadGlobal()
	if err != nil {
		return nil, err
	}
	players, err := m.store.LoadPlayers()
	if err != nil {
		return nil, err
	}

	rec := players.Ensure(username)
	display := rec.OriginalUsername
	rod := fish.RodByName(rec.EquippedRod)
	bait := fish.BaitByName(rec.EquippedBait)

	// Casts count whether or not anything bites.
	global.TotalCasts++
	rec.TotalCasts++

	weather, catch := m.resolver.Cast(rod, bait)
	lines := []string{fmt.Sprintf(
		"[GOFISH] ♌︎ %s is casting their line with %s using %s and %s...",
		display, weather.Description(), rod.Name, bait.Name)}

	if catch == nil {
		lines = append(lines, fmt.Sprintf(
			"[GOFISH] > %s: (ó﹏ò｡) You didn't catch anything, try again later...", display))
	} else {
		global.TotalFishCaught++
		rec.TotalFishCaught++
		global.Rarities[catch.Rarity]++
		rec.Rarities[catch.Rarity]++
		rec.Balance += catch.Price

		catch.Username = username
		if m.catchLog != nil {
			if err := m.catchLog.Add(ctx, *catch); err != nil {
				slog.Warn("failed to record catch", "err", err)
			}
		}

		lines = append(lines, fmt.Sprintf(
			"[GOFISH] > %s: <>< You caught a (%s) %s! It weighs %.2flbs and is worth around %s. New balance: %s",
			display, catch.Rarity, catch.Fish, catch.Weight, money(catch.Price), money(rec.Balance)))
	}

	if err := m.store.SaveGlobal(global); err != nil {
		return nil, err
	}
	if err := m.store.SavePlayers(players); err != nil {
		return nil, err
	}
	return lines, nil
}

func (m *Module) handleGamble(username, args string) ([]string, error) {
	display := m.store.DisplayName(username)
	if args == "" {
		return []string{fmt.Sprintf(
			"[GAMBLE] > %s: Specify an amount, e.g., !gamble 10, !gamble all, !gamble 50%%", display)}, nil
	}

	result, err := m.ledger.Gamble(username, args)
	if err != nil {
		balance, berr := m.ledger.Balance(username)
		if berr != nil {
			return nil, berr
		}
		switch {
		case errors.Is(err, economy.ErrNoFunds):
			return []string{fmt.Sprintf(
				"[GAMBLE] > %s: You have no funds to gamble! Current balance: %s", display, money(balance))}, nil
		case errors.Is(err, economy.ErrInvalidPercent):
			return []string{fmt.Sprintf(
				"[GAMBLE] > %s: Percentage must be between 1%% and 100%%, e.g., !gamble 50%%", display)}, nil
		case errors.Is(err, economy.ErrNonPositiveAmount):
			return []string{fmt.Sprintf(
				"[GAMBLE] > %s: Please enter a positive amount.", display)}, nil
		case errors.Is(err, economy.ErrInsufficientFunds):
			return []string{fmt.Sprintf(
				"[GAMBLE] > %s: You don't have enough funds! Current balance: %s", display, money(balance))}, nil
		case errors.Is(err, economy.ErrInvalidAmount):
			return []string{fmt.Sprintf(
				"[GAMBLE] > %s: Invalid amount. Use a number, 'all', or percentage like 50%%", display)}, nil
		default:
			return nil, err
		}
	}

	if result.Won {
		return []string{fmt.Sprintf(
			"[GAMBLE] > %s: ( ')< You won %s! New balance: %s",
			display, money(result.Amount), money(result.NewBalance))}, nil
	}
	return []string{fmt.Sprintf(
		"[GAMBLE] > %s: ( ')> You lost %s. New balance: %s",
		display, money(result.Amount), money(result.NewBalance))}, nil
}

func (m *Module) handleBalance(username string) ([]string, error) {
	balance, err := m.ledger.Balance(username)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(
		"[BALANCE] > %s: Current balance: %s", m.store.DisplayName(username), money(balance))}, nil
}

func (m *Module) handleShop(username, args string) ([]string, error) {
	display := m.store.DisplayName(username)
	argsLower := strings.ToLower(strings.TrimSpace(args))

	switch {
	case argsLower == "":
		entries := make([]string, 0, len(fish.Rods)-1)
		for _, r := range shop.ListRods() {
			entries = append(entries, fmt.Sprintf(
				"%s: %s (Catch Rate: %.2f%%, Rarity Boost: %.2fx)",
				r.Name, money(r.Price), r.CatchRate*100, r.RarityModifier))
		}
		return []string{fmt.Sprintf(
			"[SHOP] > Rods - %s. Use !shop buy <rod_name>. See baits with !shop bait",
			strings.Join(entries, ", "))}, nil

	case argsLower == "bait":
		entries := make([]string, 0, len(fish.Baits)-1)
		for _, b := range shop.ListBaits() {
			entries = append(entries, fmt.Sprintf(
				"%s: %s (Catch Rate Boost: +%.2f%%, Rarity Boost: %.2fx)",
				b.Name, money(b.Price), b.CatchRateBoost*100, b.RarityModifier))
		}
		return []string{fmt.Sprintf(
			"[SHOP] > Baits - %s. Use !shop buy <bait_name>. See rods with !shop",
			strings.Join(entries, ", "))}, nil

	case strings.HasPrefix(argsLower, "buy "):
		itemName := strings.TrimSpace(args[len("buy "):])
		return m.handleBuy(username, display, itemName)
	}

	return []string{fmt.Sprintf(
		"[SHOP] > %s: Invalid command. Use !shop, !shop bait, or !shop buy <item_name>", display)}, nil
}

func (m *Module) handleBuy(username, display, itemName string) ([]string, error) {
	purchase, err := m.shop.Buy(username, itemName)
	if err != nil {
		var freeErr *shop.FreeDefaultError
		var fundsErr *shop.InsufficientFundsError
		var unknownErr *shop.UnknownItemError
		switch {
		case errors.As(err, &freeErr):
			return []string{fmt.Sprintf(
				"[SHOP] > %s: %s is free and already equipped by default!", display, freeErr.Item)}, nil
		case errors.As(err, &fundsErr):
			return []string{fmt.Sprintf(
				"[SHOP] > %s: Not enough funds! Need %s, you have %s",
				display, money(fundsErr.Need), money(fundsErr.Have))}, nil
		case errors.As(err, &unknownErr):
			if unknownErr.Suggestion != "" {
				return []string{fmt.Sprintf(
					"[SHOP] > %s: Invalid item name. Did you mean %s?", display, unknownErr.Suggestion)}, nil
			}
			return []string{fmt.Sprintf(
				"[SHOP] > %s: Invalid item name. See baits with !shop bait, See rods with !shop", display)}, nil
		default:
			return nil, err
		}
	}

	kind := ""
	if purchase.Kind == shop.KindBait {
		kind = " bait"
	}
	return []string{fmt.Sprintf(
		"[SHOP] > %s: You bought %s%s for %s! It's now equipped. New balance: %s",
		display, purchase.Item, kind, money(purchase.Price), money(purchase.NewBalance))}, nil
}

func (m *Module) handleGiveMoney(username, args string) ([]string, error) {
	display := m.store.DisplayName(username)
	usage := fmt.Sprintf(
		"[GIVEMONEY] > %s: Please specify a player and amount, e.g., !givemoney Bob 100", display)

	fields := strings.Fields(args)
	if len(fields) < 2 {
		return []string{usage}, nil
	}

	// The amount is the last token; everything before it is the
	// recipient, who may have spaces in their name.
	recipient := strings.Join(fields[:len(fields)-1], " ")
	amount, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return []string{fmt.Sprintf(
			"[GIVEMONEY] > %s: Invalid amount. Use a number, e.g., !givemoney Bob 100", display)}, nil
	}

	transfer, err := m.ledger.GiveMoney(username, recipient, amount)
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrNonPositiveAmount):
			return []string{fmt.Sprintf("[GIVEMONEY] > %s: Amount must be positive.", display)}, nil
		case errors.Is(err, economy.ErrSelfTransfer):
			return []string{fmt.Sprintf("[GIVEMONEY] > %s: You cannot give money to yourself!", display)}, nil
		case errors.Is(err, economy.ErrRecipientNotFound):
			return []string{fmt.Sprintf("[GIVEMONEY] > %s: Player '%s' not found!", display, recipient)}, nil
		case errors.Is(err, economy.ErrInsufficientFunds):
			balance, berr := m.ledger.Balance(username)
			if berr != nil {
				return nil, berr
			}
			return []string{fmt.Sprintf(
				"[GIVEMONEY] > %s: Not enough funds! You have %s, need %s",
				display, money(balance), money(amount))}, nil
		default:
			return nil, err
		}
	}

	return []string{fmt.Sprintf(
		"[GIVEMONEY] > %s: You gave %s to %s! Your new balance: %s",
		display, money(transfer.Amount), m.store.DisplayName(recipient), money(transfer.SenderBalance))}, nil
}

func (m *Module) handleStats(username string) ([]string, error) {
	players, err := m.store.LoadPlayers()
	if err != nil {
		return nil, err
	}
	rec, ok := players.Get(username)
	if !ok {
		return []string{fmt.Sprintf(
			"[STATS] > %s: No stats available. Try fishing first!", username)}, nil
	}

	return []string{fmt.Sprintf(
		"[STATS] %s's Stats: Equipped Rod: %s, Equipped Bait: %s, Balance: %s, Total Casts: %d, Total Fish Caught: %d, %s",
		rec.OriginalUsername, rec.EquippedRod, rec.EquippedBait, money(rec.Balance),
		rec.TotalCasts, rec.TotalFishCaught, rarityBreakdown(rec.Rarities))}, nil
}

func (m *Module) handleGlobalStats(username string) ([]string, error) {
	if !m.isPrivileged(username) {
		who := "the configured user"
		if m.privileged != "" {
			who = m.privileged
		}
		return []string{fmt.Sprintf(
			"[GLOBALSTATS] > %s: Only %s can use !globalstats.", m.store.DisplayName(username), who)}, nil
	}

	global, err := m.store.LoadGlobal()
	if err != nil {
		return nil, err
	}
	players, err := m.store.LoadPlayers()
	if err != nil {
		return nil, err
	}

	return []string{fmt.Sprintf(
		"[GLOBALSTATS] Global Fishing Stats: Total Anglers: %d, Total Casts: %d, Total Fish Caught: %d, %s",
		len(players), global.TotalCasts, global.TotalFishCaught, rarityBreakdown(global.Rarities))}, nil
}

func (m *Module) handleLeaderboard(ctx context.Context) ([]string, error) {
	if m.catchLog == nil {
		return nil, nil
	}
	rows, err := m.catchLog.TopByPrice(ctx, 5)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{"[LEADERBOARD] No catches yet - type !fish to make the first!"}, nil
	}

	entries := make([]string, 0, len(rows))
	for i, c := range rows {
		entries = append(entries, fmt.Sprintf(
			"#%d %s - (%s) %s, %.2flbs, %s",
			i+1, m.store.DisplayName(c.Username), c.Rarity, c.Fish, c.Weight, money(c.Price)))
	}
	return []string{"[LEADERBOARD] Top Catches: " + strings.Join(entries, "; ")}, nil
}

func rarityBreakdown(rarities map[string]int) string {
	parts := make([]string, 0, len(fish.Rarities))
	for _, r := range fish.Rarities {
		parts = append(parts, fmt.Sprintf("%s: %d", r, rarities[r.String()]))
	}
	return "Rarities - " + strings.Join(parts, ", ")
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
