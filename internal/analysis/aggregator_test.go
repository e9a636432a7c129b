package analysis

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/intentgraph/pkg/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAggregate_DedupFirstOccurrenceWins(t *testing.T) {
	intents := []domain.Intent{
		{
			IntentID:   "a",
			RedirectTo: "b",
			Answers: []domain.Answer{
				// Same (source, target, type) as next answer, different
				// condition: only the first survives.
				{Answer: "GOTO c", Slots: []domain.Slot{{SlotID: "city", Values: []string{"moscow"}}}},
				{Answer: "GOTO c"},
			},
		},
		{IntentID: "a", RedirectTo: "b"}, // duplicate record
	}

	agg := Aggregate(discardLogger(), intents, nil)
	require.Len(t, agg.Transitions, 2)

	assert.Equal(t, "b", agg.Transitions[0].TargetID)
	assert.Equal(t, domain.TransitionDirectRedirect, agg.Transitions[0].Type)
	assert.Equal(t, "c", agg.Transitions[1].TargetID)
	assert.Equal(t, "city=moscow", agg.Transitions[1].Condition)

	assert.Equal(t, 1, agg.TypeCounts[domain.TransitionDirectRedirect])
	assert.Equal(t, 1, agg.TypeCounts[domain.TransitionTextRedirect])
}

func TestAggregate_SameEndpointsDifferentTypesKept(t *testing.T) {
	intents := []domain.Intent{{
		IntentID:   "a",
		RedirectTo: "b",
		Answers:    []domain.Answer{{Answer: "REDIRECT_TO_INTENT b"}},
	}}

	agg := Aggregate(discardLogger(), intents, nil)
	require.Len(t, agg.Transitions, 2)
	assert.NotEqual(t, agg.Transitions[0].Type, agg.Transitions[1].Type)
}

func TestDedup_Idempotent(t *testing.T) {
	in := []domain.Transition{
		{SourceID: "a", TargetID: "b", Type: domain.TransitionDirectRedirect},
		{SourceID: "a", TargetID: "b", Type: domain.TransitionDirectRedirect},
		{SourceID: "a", TargetID: "b", Type: domain.TransitionFallback},
	}
	once := Dedup(in)
	require.Len(t, once, 2)
	assert.Equal(t, once, Dedup(once))
}

func TestAggregate_Classification(t *testing.T) {
	tests := []struct {
		name    string
		intent  domain.Intent
		want    domain.IntentType
		subtype string
	}{
		{
			name:   "main record type",
			intent: domain.Intent{IntentID: "i1", RecordType: "cc_regexp_main"},
			want:   domain.IntentTypeMain,
		},
		{
			name:   "match record type",
			intent: domain.Intent{IntentID: "i2", RecordType: "cc_intent_match"},
			want:   domain.IntentTypeMatch,
		},
		{
			name:   "viber messenger",
			intent: domain.Intent{IntentID: "i3", RecordType: "cc_viber_flow"},
			want:   domain.IntentTypeMessenger,
		},
		{
			name:   "fallback by title",
			intent: domain.Intent{IntentID: "i4", RecordType: "cc_dialog", Title: "Global Fallback"},
			want:   domain.IntentTypeFallback,
		},
		{
			name:   "error title is fallback",
			intent: domain.Intent{IntentID: "i5", Title: "Error handler"},
			want:   domain.IntentTypeFallback,
		},
		{
			name:   "dialog default",
			intent: domain.Intent{IntentID: "i6", RecordType: "cc_dialog", Title: "Обычный диалог"},
			want:   domain.IntentTypeDialog,
		},
		{
			name:    "main beats messenger",
			intent:  domain.Intent{IntentID: "i7", RecordType: "cc_viber_main"},
			want:    domain.IntentTypeMain,
			subtype: "",
		},
		{
			name:    "insurance subtype from title",
			intent:  domain.Intent{IntentID: "i8", Title: "Оформить полис ОСАГО"},
			want:    domain.IntentTypeDialog,
			subtype: "insurance",
		},
		{
			name:    "payment subtype from topics",
			intent:  domain.Intent{IntentID: "i9", Title: "Счёт", Topics: []string{"оплата картой"}},
			want:    domain.IntentTypeDialog,
			subtype: "payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(discardLogger(), []domain.Intent{tt.intent}, DefaultSubtypeRules())
			c, ok := agg.Classifications[tt.intent.IntentID]
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Type)
			assert.Equal(t, tt.subtype, c.Subtype)
		})
	}
}

func TestAggregate_SubtypeRuleOrderWins(t *testing.T) {
	rules := []SubtypeRule{
		{Name: "first", Keywords: []string{"word"}},
		{Name: "second", Keywords: []string{"word"}},
	}
	agg := Aggregate(discardLogger(), []domain.Intent{{IntentID: "x", Title: "word"}}, rules)
	assert.Equal(t, "first", agg.Classifications["x"].Subtype)
}

func TestAggregate_SkipsRecordsWithoutID(t *testing.T) {
	agg := Aggregate(discardLogger(), []domain.Intent{
		{Title: "anonymous", RedirectTo: "somewhere"},
		{IntentID: "NaN"},
	}, nil)
	assert.Empty(t, agg.Transitions)
	assert.Empty(t, agg.Classifications)
}
