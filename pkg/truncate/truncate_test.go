package truncate

import (
	"strings"
	"testing"
)

func TestDescriptionShortInputUnchanged(t *testing.T) {
	input := "Short line.\n"
	if got := Description(input, 140, 5); got != input {
		t.Fatalf("Description = %q, want input unchanged", got)
	}
}

func TestDescriptionEmptyInput(t *testing.T) {
	if got := Description("", 140, 5); got != "" {
		t.Fatalf("Description = %q, want empty", got)
	}
}

func TestDescriptionLineCountTruncation(t *testing.T) {
	line := "aaaaaaaaa\n" // 10 runes with terminator
	input := strings.Repeat(line, 6)

	want := strings.Repeat(line, 5) + "..."
	if got := Description(input, 140, 5); got != want {
		t.Fatalf("Description = %q, want %q", got, want)
	}
}

func TestDescriptionExactlyMaxLinesNoEllipsis(t *testing.T) {
	input := strings.Repeat("aaaaaaaaa\n", 5)
	if got := Description(input, 140, 5); got != input {
		t.Fatalf("Description = %q, want input unchanged", got)
	}
}

func TestDescriptionUnbrokenWordHardCut(t *testing.T) {
	input := strings.Repeat("a", 200)

	want := strings.Repeat("a", 140) + "..."
	if got := Description(input, 140, 5); got != want {
		t.Fatalf("Description = %q, want %q", got, want)
	}
}

func TestDescriptionBacksUpToWordBoundary(t *testing.T) {
	if got := Description("hello brave new world", 11, 5); got != "hello..." {
		t.Fatalf("Description = %q, want %q", got, "hello...")
	}
}

func TestDescriptionOverflowLineAfterAccumulatedLines(t *testing.T) {
	input := "aaaa bbbb\naaaa bbbb\naaaa bbbb\n"

	want := "aaaa bbbb\naaaa bbbb\naaaa..."
	if got := Description(input, 25, 5); got != want {
		t.Fatalf("Description = %q, want %q", got, want)
	}
}

func TestDescriptionStopsAfterFirstOverflowingLine(t *testing.T) {
	input := "aaaa bbbb cccc\nshort\n"

	got := Description(input, 10, 5)
	if strings.Contains(got, "short") {
		t.Fatalf("Description = %q, must not include lines after the cut", got)
	}
	if got != "aaaa bbbb..." {
		t.Fatalf("Description = %q, want %q", got, "aaaa bbbb...")
	}
}

func TestDescriptionCountsRunesNotBytes(t *testing.T) {
	if got := Description("héllo wörld", 7, 5); got != "héllo..." {
		t.Fatalf("Description = %q, want %q", got, "héllo...")
	}
}

func TestDescriptionVisibleLengthNeverExceedsBudget(t *testing.T) {
	inputs := []string{
		strings.Repeat("word ", 100),
		strings.Repeat("a", 500),
		strings.Repeat("some words here\n", 20),
		"one\ntwo\nthree\nfour\nfive\nsix\nseven\n",
	}

	const maxChars = 140
	for _, input := range inputs {
		got := Description(input, maxChars, 5)
		visible := strings.TrimSuffix(got, "...")
		if n := len([]rune(visible)); n > maxChars {
			t.Fatalf("visible length %d exceeds budget %d for input %q", n, maxChars, input[:20])
		}
	}
}

func TestDescriptionEllipsisOnlyWhenCut(t *testing.T) {
	fits := "fits entirely\nwithin budget\n"
	if got := Description(fits, 140, 5); strings.HasSuffix(got, "...") {
		t.Fatalf("Description = %q, unexpected ellipsis", got)
	}

	cut := strings.Repeat("a", 200)
	if got := Description(cut, 140, 5); !strings.HasSuffix(got, "...") {
		t.Fatalf("Description = %q, expected ellipsis", got)
	}
}

func TestDescriptionNeverEndsMidWord(t *testing.T) {
	input := "alpha beta gamma delta epsilon zeta eta theta"

	for budget := 6; budget < len(input); budget++ {
		got := Description(input, budget, 5)
		visible := strings.TrimSuffix(got, "...")
		if visible == input {
			continue
		}
		if visible == "" {
			continue
		}
		if !strings.HasPrefix(input, visible) {
			t.Fatalf("budget %d: %q is not a prefix of input", budget, visible)
		}
		if next := input[len(visible)]; next != ' ' {
			t.Fatalf("budget %d: cut %q ends mid-word", budget, visible)
		}
	}
}
