package faq

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_ThreadCountQuestion(t *testing.T) {
	engine := Default()
	query := "What is Thread Count (TC) and why does it matter?"

	got := engine.Respond(query)

	assert.Equal(t, []string{"thread", "count", "matter"}, got.Tokens)
	assert.Equal(t, SourceFAQ, got.Source)
	require.NotNil(t, got.Record)
	assert.Equal(t, "prod-1", got.Record.ID)
	assert.True(t, strings.HasPrefix(got.Text, "Thread Count (TC) refers to the number of threads"))
	assert.GreaterOrEqual(t, got.Score, PhraseMatchScore)

	related := engine.RelatedQuestions(got.Text, query)
	assert.Equal(t, "products", RelatedTopic(got.Text, query))
	assert.Equal(t, "What sizes do your bedsheets come in?", related[0])
}

func TestRespond_AlwaysAnswers(t *testing.T) {
	engine := Default()
	queries := []string{"", "   ", "?!?!", "asdkjh qwe zzz", "the is a", "zzqx blorp", "\n\t"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got := engine.Respond(q)
			assert.Equal(t, SourceDefault, got.Source)
			assert.Equal(t, DefaultResponse, got.Text)
			assert.Nil(t, got.Record)
		})
	}
}

func TestRespond_ExactQuestionReturnsItsAnswer(t *testing.T) {
	engine := Default()

	for _, rec := range DefaultCorpus().Records() {
		for _, q := range []string{rec.Question, strings.ToUpper(rec.Question), "  " + rec.Question + " "} {
			got := engine.Respond(q)
			assert.Equal(t, rec.Answer, got.Text, "query %q", q)
			require.NotNil(t, got.Record, "query %q", q)
			assert.Equal(t, rec.ID, got.Record.ID, "query %q", q)
		}
	}
}

func TestRespond_Deterministic(t *testing.T) {
	engine := Default()
	queries := append(QuickQuestions(), "towel", "gsm", "cotton", "hello", "refund")

	for _, q := range queries {
		first := engine.Respond(q)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, engine.Respond(q), q)
		}
	}
}

func TestRespond_ConcurrentUse(t *testing.T) {
	engine := Default()
	want := engine.BotResponse("cotton")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, engine.BotResponse("cotton"))
		}()
	}
	wg.Wait()
}

func TestRespond_TechnicalTermInQuestionWins(t *testing.T) {
	got := NewEngine(gsmCorpus(t)).Respond("What is GSM?")

	require.NotNil(t, got.Record)
	assert.Equal(t, "a", got.Record.ID)
	assert.Equal(t, QuestionTechnicalScore, got.Score)
}

func TestRespond_WeakMatchFallsBack(t *testing.T) {
	corpus := newTestCorpus(t, Record{ID: "x", Question: "Is linen soft?", Answer: "Woven from long staple fibres.", Category: "Products"})

	// one answer-only keyword scores 1
	got := NewEngine(corpus).Respond("fibres")
	assert.Equal(t, SourceDefault, got.Source)
}

func TestBotResponse(t *testing.T) {
	assert.Equal(t, GreetingResponse, BotResponse("hi"))
	assert.Equal(t, DefaultResponse, BotResponse("the is a"))
	assert.Equal(t, Default().Respond("cotton").Text, BotResponse("cotton"))
}
