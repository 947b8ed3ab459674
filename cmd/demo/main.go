// Command demo builds a batch of consistent event envelopes from a YAML
// scenario and verifies them with the same facts that built them.
//
// Usage:
//
//	demo [-scenario scenario.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/funfact/pkg/funfact"
)

// Scenario is the demo configuration loaded from YAML.
type Scenario struct {
	// Seed for the entropy buffer. Same seed, same batch.
	Seed int64 `yaml:"seed"`

	// Entropy is the number of random bytes available to the builder.
	Entropy int `yaml:"entropy,omitempty"`

	// Count is how many envelopes to build.
	Count int `yaml:"count,omitempty"`

	// Stream is the identifier every envelope, and every receipt, must carry.
	Stream string `yaml:"stream"`

	// Note is the payload a receipt must carry when one is present.
	Note string `yaml:"note"`
}

func defaultScenario() Scenario {
	return Scenario{
		Seed:    1,
		Entropy: 1 << 20,
		Count:   6,
		Stream:  "orders",
		Note:    "accepted",
	}
}

// Envelope is a journal-like record: the header always names its stream, the
// sequence numbers of a batch run consecutively, and an optional receipt must
// agree with the header.
type Envelope struct {
	ID      uuid.UUID
	Stream  string
	Seq     uint64
	Receipt *Receipt
}

// Receipt acknowledges an envelope; its stream must match the envelope's.
type Receipt struct {
	Stream string
	Note   string
}

func envelopeFact(s Scenario) funfact.Facts[Envelope] {
	receiptFact := funfact.Facts[Receipt]{
		funfact.Lens("Receipt.Stream",
			func(r Receipt) string { return r.Stream },
			func(r Receipt, v string) Receipt { r.Stream = v; return r },
			funfact.Eq("stream", s.Stream)),
		funfact.Lens("Receipt.Note",
			func(r Receipt) string { return r.Note },
			func(r Receipt, v string) Receipt { r.Note = v; return r },
			funfact.Eq("note", s.Note)),
	}

	return funfact.Facts[Envelope]{
		funfact.Lens("Envelope.Stream",
			func(e Envelope) string { return e.Stream },
			func(e Envelope, v string) Envelope { e.Stream = v; return e },
			funfact.Eq("stream", s.Stream)),
		funfact.Lens("Envelope.Seq",
			func(e Envelope) uint64 { return e.Seq },
			func(e Envelope, v uint64) Envelope { e.Seq = v; return e },
			funfact.ConsecutiveInt("seq", uint64(0))),
		funfact.Prism("Envelope.Receipt",
			func(e Envelope) (Receipt, bool) {
				if e.Receipt == nil {
					return Receipt{}, false
				}
				return *e.Receipt, true
			},
			func(e Envelope, r Receipt) Envelope { e.Receipt = &r; return e },
			receiptFact),
	}
}

func loadScenario(path string) (Scenario, error) {
	s := defaultScenario()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Entropy <= 0 {
		s.Entropy = defaultScenario().Entropy
	}
	if s.Count <= 0 {
		s.Count = defaultScenario().Count
	}
	return s, nil
}

func main() {
	scenarioPath := flag.String("scenario", "", "path to a scenario YAML file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Error("loading scenario failed", "error", err)
		os.Exit(1)
	}
	log.Info("building batch", "stream", s.Stream, "count", s.Count, "seed", s.Seed)

	buf := make([]byte, s.Entropy)
	rand.New(rand.NewSource(s.Seed)).Read(buf)
	g := funfact.NewGenerator(buf)

	fact := envelopeFact(s)
	batch, err := funfact.BuildSeq[Envelope](fact, s.Count, g)
	if err != nil {
		log.Error("building batch failed", "error", err)
		os.Exit(1)
	}

	// Re-verify with a fresh fact: the consecutive counter is stateful and
	// the building walk has already advanced it.
	if c := funfact.CheckSeq[Envelope](envelopeFact(s), batch); !c.OK() {
		log.Error("built batch failed verification", "violations", c.Errors())
		os.Exit(1)
	}

	green, cyan, reset := "", "", ""
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		green, cyan, reset = "\033[32m", "\033[36m", "\033[0m"
	}

	for _, e := range batch {
		receipt := "-"
		if e.Receipt != nil {
			receipt = fmt.Sprintf("%s/%s", e.Receipt.Stream, e.Receipt.Note)
		}
		fmt.Printf("%s%s%s seq=%d stream=%s%s%s receipt=%s\n",
			cyan, e.ID, reset, e.Seq, green, e.Stream, reset, receipt)
	}
	log.Info("batch verified", "entropy_left", g.Remaining())
}
