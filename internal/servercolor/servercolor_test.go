package servercolor

import (
	"math/rand"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAssign(t *testing.T) {
	t.Parallel()
	servers := []string{"web-2", "api-1", "worker-1"}

	tests := []struct {
		name   string
		server string
		want   string
		wantOK bool
	}{
		{"first sorted", "api-1", Palette[0], true},
		{"second sorted", "web-2", Palette[1], true},
		{"third sorted", "worker-1", Palette[2], true},
		{"unknown server", "db-1", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Assign(tt.server, servers)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Assign(%q) = (%q, %v), want (%q, %v)", tt.server, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAssign_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	servers := []string{"c", "a", "b"}
	Assign("a", servers)
	AssignAll(servers)

	if servers[0] != "c" || servers[1] != "a" || servers[2] != "b" {
		t.Errorf("input slice was reordered: %v", servers)
	}
}

func TestAssign_WrapsAfterPalette(t *testing.T) {
	t.Parallel()
	servers := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}

	got, ok := Assign("s9", servers)
	if !ok || got != Palette[0] {
		t.Errorf("9th server color = (%q, %v), want palette[0] %q", got, ok, Palette[0])
	}
}

func TestAssign_Duplicates(t *testing.T) {
	t.Parallel()
	servers := []string{"b", "a", "a", "c"}

	got, _ := Assign("c", servers)
	if got != Palette[2] {
		t.Errorf("duplicates should not shift colors: Assign(c) = %q, want %q", got, Palette[2])
	}
	if all := AssignAll(servers); len(all) != 3 || all["c"] != Palette[2] {
		t.Errorf("AssignAll with duplicates = %v", all)
	}
}

func TestAssignAll_Empty(t *testing.T) {
	t.Parallel()
	if got := AssignAll(nil); len(got) != 0 {
		t.Errorf("AssignAll(nil) = %v, want empty", got)
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()
	styles := Styles([]string{"web-1", "api-1", "web-1"})

	if len(styles) != 2 {
		t.Fatalf("len(Styles) = %d, want 2", len(styles))
	}
	if fg := styles["web-1"].GetForeground(); fg != lipgloss.Color(Palette[1]) {
		t.Errorf("web-1 foreground = %v, want %s", fg, Palette[1])
	}
	if _, ok := styles["ghost"].GetForeground().(lipgloss.NoColor); !ok {
		t.Error("unknown server should have no foreground")
	}
}

// genServerSet generates non-empty lists of server-like names.
func genServerSet() gopter.Gen {
	return gen.SliceOf(gen.Identifier()).SuchThat(func(s []string) bool { return len(s) > 0 })
}

// TestAssign_PermutationInvariant_PropertyBased checks that only the
// membership of the server set matters, not its order.
func TestAssign_PermutationInvariant_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Assign is invariant under permutation", prop.ForAll(
		func(servers []string, seed int64) bool {
			shuffled := append([]string(nil), servers...)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			for _, name := range servers {
				a, okA := Assign(name, servers)
				b, okB := Assign(name, shuffled)
				if !okA || !okB || a != b {
					return false
				}
			}
			return true
		},
		genServerSet(),
		gen.Int64(),
	))

	properties.Property("Assign and AssignAll agree", prop.ForAll(
		func(servers []string) bool {
			all := AssignAll(servers)
			for _, name := range servers {
				color, ok := Assign(name, servers)
				if !ok || all[name] != color {
					return false
				}
			}
			return true
		},
		genServerSet(),
	))

	properties.Property("palette index wraps every eight servers", prop.ForAll(
		func(n int) bool {
			servers := make([]string, n)
			for i := range servers {
				servers[i] = string(rune('a'+i/26)) + string(rune('a'+i%26))
			}
			all := AssignAll(servers)
			for i, name := range servers {
				if all[name] != Palette[i%len(Palette)] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60),
	))

	properties.TestingRun(t)
}
