package bot

const (
	cmdFish        = "!fish"
	cmdGamble      = "!gamble"
	cmdBalance     = "!balance"
	cmdShop        = "!shop"
	cmdGiveMoney   = "!givemoney"
	cmdStats       = "!stats"
	cmdGlobalStats = "!globalstats"
	cmdLeaderboard = "!leaderboard"
	cmdCommands    = "!commands"
)

// commandList is what !commands prints, in the order players learn
// them.
var commandList = []string{
	cmdFish,
	cmdGamble,
	cmdBalance,
	cmdStats,
	cmdGiveMoney,
	"!shop",
	"!shop bait",
	"!shop buy <item_name>",
	cmdLeaderboard,
}

func knownCommand(cmd string) bool {
	switch cmd {
	case cmdFish, cmdGamble, cmdBalance, cmdShop, cmdGiveMoney,
		cmdStats, cmdGlobalStats, cmdLeaderboard, cmdCommands:
		return true
	}
	return false
}
