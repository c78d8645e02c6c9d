package engine

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a value and strips diacritics, so "Negociação" and
// "negociacao" classify identically.
func Fold(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Money tri-state values.
const (
	MoneyYes     = "yes"
	MoneyNo      = "no"
	MoneyUnknown = "unknown"
)

// MoneyTriState classifies a "has budget" flag. Total over all strings:
// anything that is neither a known yes nor a known no token, including
// the empty string, is unknown.
func MoneyTriState(s string) string {
	switch Fold(strings.TrimSpace(s)) {
	case "yes", "sim", "true", "1", "y":
		return MoneyYes
	case "no", "nao", "false", "0", "n":
		return MoneyNo
	default:
		return MoneyUnknown
	}
}

// Canonical funnel stages, in pipeline order.
const (
	StageLead             = "lead"
	StageFirstInteraction = "first_interaction"
	StagePresentation     = "presentation"
	StageProposalSent     = "proposal_sent"
	StagePaymentPending   = "payment_pending"
	StageNegotiation      = "negotiation"
	StageSignature        = "signature"
)

// StageOrder is the pipeline order used by the funnel dashboard.
var StageOrder = []string{
	StageLead,
	StageFirstInteraction,
	StagePresentation,
	StageProposalSent,
	StagePaymentPending,
	StageNegotiation,
	StageSignature,
}

// StageNames maps canonical stages to their display labels.
var StageNames = map[string]string{
	StageLead:             "Lead",
	StageFirstInteraction: "Primeira interação",
	StagePresentation:     "Apresentação",
	StageProposalSent:     "Proposta enviada",
	StagePaymentPending:   "Pagamento pendente",
	StageNegotiation:      "Negociação",
	StageSignature:        "Assinatura",
}

// stageRules are checked in order; the most specific tokens come first
// so "proposta em negociação" lands on negotiation, not proposal.
var stageRules = []struct {
	stage  string
	tokens []string
}{
	{StageSignature, []string{"assinatura", "signature", "contrato"}},
	{StageNegotiation, []string{"negocia", "negotiation"}},
	{StagePaymentPending, []string{"pagamento", "payment", "pendente"}},
	{StageProposalSent, []string{"proposta", "proposal"}},
	{StageFirstInteraction, []string{"primeira", "interacao", "first"}},
	{StagePresentation, []string{"apresenta", "presentation"}},
	{StageLead, []string{"lead"}},
}

// FunnelStage classifies free-text stage values by substring match on
// the de-accented lowercase form. Empty and unrecognized values default
// to presentation: legacy rows predate the stage field, and the
// dashboards depend on that default. Do not change it.
func FunnelStage(s string) string {
	folded := Fold(strings.TrimSpace(s))
	if folded == "" {
		return StagePresentation
	}
	for _, rule := range stageRules {
		for _, token := range rule.tokens {
			if strings.Contains(folded, token) {
				return rule.stage
			}
		}
	}
	return StagePresentation
}

var digitRun = regexp.MustCompile(`\d+`)

// Team-size buckets.
const (
	TeamSmall  = "1-2"
	TeamMedium = "3-5"
	TeamLarge  = "6-10"
	TeamHuge   = ">10"
)

// TeamBucket classifies a free-text "how many people" value. A single
// embedded number maps straight to its range; a numeric span maps to
// the bucket that fully contains [min,max], else >10. Empty or
// number-free values default to 1-2 (treated as small/not informed;
// another load-bearing legacy default).
func TeamBucket(s string) string {
	matches := digitRun.FindAllString(s, -1)
	if len(matches) == 0 {
		return TeamSmall
	}

	min, max := 0, 0
	for i, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if i == 0 || n < min {
			min = n
		}
		if i == 0 || n > max {
			max = n
		}
	}

	if len(matches) == 1 {
		return sizeBucket(max)
	}
	if b := sizeBucket(min); b == sizeBucket(max) {
		return b
	}
	return TeamHuge
}

func sizeBucket(n int) string {
	switch {
	case n <= 2:
		return TeamSmall
	case n <= 5:
		return TeamMedium
	case n <= 10:
		return TeamLarge
	default:
		return TeamHuge
	}
}

// Channel classifies an acquisition tag. Rules apply in priority order
// on the folded tag.
func Channel(tag string) string {
	folded := Fold(strings.TrimSpace(tag))
	switch {
	case folded == "":
		return displayNotInformed
	case strings.Contains(folded, "trial"):
		return "Trial"
	case containsAny(folded, "google", "adwords", "gads"):
		return "Google"
	case containsAny(folded, "meta", "facebook", "instagram", "fb"):
		return "Meta"
	case containsAny(folded, "org", "seo", "geo"):
		return "Orgânico"
	default:
		return "Outros"
	}
}

// EntryType classifies the same acquisition tag into how the lead came
// in (trial signup, demo request, landing-page form).
func EntryType(tag string) string {
	folded := Fold(strings.TrimSpace(tag))
	switch {
	case folded == "":
		return displayNotInformed
	case strings.Contains(folded, "trial"):
		return "Trial"
	case strings.Contains(folded, "demo"):
		return "Demo"
	case containsAny(folded, "lp", "landing", "form", "formul"):
		return "LP formulário"
	default:
		return "Outros"
	}
}

func containsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
