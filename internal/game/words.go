package game

// Tier names a word bank.
type Tier string

// Word bank tiers.
const (
	TierEasy        Tier = "easy"
	TierMedium      Tier = "medium"
	TierHard        Tier = "hard"
	TierInsane      Tier = "insane"
	TierProgramming Tier = "programming"
	TierGibberish   Tier = "gibberish"
)

// difficultyOrder is the escalation order; TierInsane saturates.
var difficultyOrder = []Tier{TierEasy, TierMedium, TierHard, TierInsane}

// Tiers lists the tiers accepted by SetWordBank, in display order.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard, TierInsane, TierProgramming, TierGibberish}
}

// ParseTier validates a tier name.
func ParseTier(name string) (Tier, bool) {
	for _, t := range Tiers() {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// DefaultWordBanks returns fresh copies of the built-in word banks.
// The gibberish tier is empty; gibberish words are generated on demand.
func DefaultWordBanks() map[Tier][]string {
	return map[Tier][]string{
		TierEasy: {
			"cat", "dog", "run", "jump", "code", "type", "fast", "slow", "game", "play",
			"win", "lose", "key", "word", "text", "fire", "ice", "hot", "cold", "big",
			"small", "red", "blue", "green", "black", "white", "up", "down", "left", "right",
			"go", "stop", "yes", "no", "hit", "miss", "good", "bad", "new", "old",
		},
		TierMedium: {
			"function", "variable", "constant", "keyboard", "monitor", "computer", "program",
			"algorithm", "developer", "challenge", "precision", "accuracy", "velocity",
			"momentum", "intensity", "frequency", "amplitude", "spectrum", "terminal",
			"interface", "protocol", "sequence", "parallel", "recursive", "iteration",
			"compiler", "debugger", "framework", "library", "module", "package", "deploy",
		},
		TierHard: {
			"asynchronous", "polymorphism", "encapsulation", "authentication", "authorization",
			"infrastructure", "microservices", "containerization", "virtualization",
			"orchestration", "optimization", "implementation", "configuration", "serialization",
			"deserialization", "concatenation", "interpolation", "extrapolation", "acceleration",
			"deceleration", "synchronization", "initialization", "instantiation", "multiplication",
		},
		TierInsane: {
			"antidisestablishmentarianism", "pneumonoultramicroscopicsilicovolcanoconiosis",
			"supercalifragilisticexpialidocious", "pseudopseudohypoparathyroidism",
			"floccinaucinihilipilification", "hippopotomonstrosesquippedaliophobia",
			"thyroparathyroidectomized", "dichlorodifluoromethane", "incomprehensibilities",
			"electroencephalographically", "immunoelectrophoretically", "psychophysicotherapeutics",
		},
		TierProgramming: {
			"func", "var", "const", "type", "struct", "interface", "return", "defer",
			"go", "chan", "select", "range", "map", "make", "append", "len", "cap",
			"package", "import", "switch", "case", "default", "fallthrough", "goto",
			"nil", "iota", "true", "false", "error", "string", "rune", "byte", "any",
			"fmt.Println", "fmt.Errorf", "errors.Is", "errors.As", "context.Background",
			"strings.Builder", "sync.Mutex", "time.Now", "time.AfterFunc", "os.Exit",
			"json.Marshal", "io.Reader", "http.HandleFunc", "sort.Slice", "math.Floor",
		},
		TierGibberish: {},
	}
}

func cloneBanks(banks map[Tier][]string) map[Tier][]string {
	out := make(map[Tier][]string, len(banks))
	for tier, words := range banks {
		out[tier] = append([]string(nil), words...)
	}
	return out
}
