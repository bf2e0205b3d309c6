package game

import "time"

// Boss describes a boss encounter tier.
type Boss struct {
	Name           string
	Banner         string
	MaxHP          int
	Phrases        []string
	AttackInterval time.Duration
}

// MaxBossLevel is the highest built-in boss tier.
const MaxBossLevel = 5

// DefaultBosses returns the built-in boss tiers keyed by level.
func DefaultBosses() map[int]Boss {
	return map[int]Boss{
		1: {
			Name: "SYNTAX ERROR",
			Banner: `
    ╔═══════════════════╗
    ║   (╯°□°)╯︵ ┻━┻   ║
    ║    SYNTAX ERROR   ║
    ║   HP: [████████]  ║
    ╚═══════════════════╝`,
			MaxHP: 100,
			Phrases: []string{
				"undefined is not a function",
				"unexpected token",
				"missing semicolon",
				"cannot read property of null",
				"stack overflow",
			},
			AttackInterval: 3000 * time.Millisecond,
		},
		2: {
			Name: "MEMORY LEAK",
			Banner: `
    ╔═══════════════════════╗
    ║   ░░░▓▓▓███████▓▓▓░░  ║
    ║      MEMORY LEAK      ║
    ║   ╔══╗ ╔══╗ ╔══╗      ║
    ║   ║▓▓║ ║▓▓║ ║▓▓║      ║
    ║   HP: [████████████]  ║
    ╚═══════════════════════╝`,
			MaxHP: 200,
			Phrases: []string{
				"heap allocation failed",
				"out of memory exception",
				"garbage collection paused",
				"buffer overflow detected",
				"segmentation fault core dumped",
				"memory corruption at address",
			},
			AttackInterval: 2500 * time.Millisecond,
		},
		3: {
			Name: "INFINITE LOOP",
			Banner: `
    ╔═════════════════════════╗
    ║   ╭─────────────────╮   ║
    ║   │ for {           │   ║
    ║   │   INFINITE LOOP │   ║
    ║   │ }               │   ║
    ║   ╰─────────────────╯   ║
    ║   HP: [██████████████]  ║
    ╚═════════════════════════╝`,
			MaxHP: 350,
			Phrases: []string{
				"while true do nothing end",
				"for ever and ever and ever",
				"recursion without base case",
				"call stack exceeded maximum",
				"process not responding",
				"application has frozen",
				"ctrl alt delete required",
			},
			AttackInterval: 2000 * time.Millisecond,
		},
		4: {
			Name: "RACE CONDITION",
			Banner: `
    ╔═══════════════════════════════╗
    ║  ┌──┐  ┌──┐  ┌──┐  ┌──┐      ║
    ║  │G1│=>│G2│<=│G3│=>│G4│      ║
    ║  └──┘  └──┘  └──┘  └──┘      ║
    ║       RACE CONDITION          ║
    ║   HP: [████████████████████]  ║
    ╚═══════════════════════════════╝`,
			MaxHP: 500,
			Phrases: []string{
				"deadlock detected between goroutines",
				"mutex acquisition timeout",
				"concurrent map writes",
				"goroutine synchronization failed",
				"atomic operation interrupted",
				"semaphore wait abandoned",
				"critical section violation",
				"goroutine starvation detected",
			},
			AttackInterval: 1800 * time.Millisecond,
		},
		5: {
			Name: "FINAL BOSS: LEGACY CODE",
			Banner: `
    ╔═══════════════════════════════════════╗
    ║  ████████████████████████████████████ ║
    ║  █ // TODO: refactor this someday   █ ║
    ║  █ // Author: Unknown, Year: 1997   █ ║
    ║  █ // WARNING: HERE BE DRAGONS      █ ║
    ║  █                                  █ ║
    ║  █     L E G A C Y   C O D E        █ ║
    ║  █                                  █ ║
    ║  █  "It works, don't touch it"      █ ║
    ║  ████████████████████████████████████ ║
    ║   HP: [██████████████████████████████] ║
    ╚═══════════════════════════════════════╝`,
			MaxHP: 1000,
			Phrases: []string{
				"magic number forty two detected",
				"deprecated function call warning",
				"documentation not found anywhere",
				"spaghetti code complexity exceeded",
				"technical debt interest accruing",
				"vendor lock in dependency hell",
				"backwards compatibility nightmare",
				"undocumented side effects detected",
				"goto statement considered harmful",
				"global variable mutation chaos",
			},
			AttackInterval: 1500 * time.Millisecond,
		},
	}
}

func (b Boss) clone() Boss {
	b.Phrases = append([]string(nil), b.Phrases...)
	return b
}

func cloneBosses(bosses map[int]Boss) map[int]Boss {
	out := make(map[int]Boss, len(bosses))
	for level, b := range bosses {
		out[level] = b.clone()
	}
	return out
}
