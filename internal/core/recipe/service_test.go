package recipe

import (
	"context"
	"errors"
	"testing"

	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, dishName string, ingredients []string) (string, error) {
	args := m.Called(ctx, dishName, ingredients)
	return args.String(0), args.Error(1)
}

type mockClassifier struct{ mock.Mock }

func (m *mockClassifier) Classify(ctx context.Context, imageData string) (string, error) {
	args := m.Called(ctx, imageData)
	return args.String(0), args.Error(1)
}

type mockDetector struct{ mock.Mock }

func (m *mockDetector) Detect(ctx context.Context, imageData string) ([]string, error) {
	args := m.Called(ctx, imageData)
	labels, _ := args.Get(0).([]string)
	return labels, args.Error(1)
}

// fakeAI 固定回傳內容並記錄收到的 prompt
type fakeAI struct {
	content string
	err     error
	prompts []string
	images  []string
}

func (f *fakeAI) ProcessRequest(_ context.Context, prompt string, imageData string) (*aiservice.Response, error) {
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, imageData)
	if f.err != nil {
		return nil, f.err
	}
	return &aiservice.Response{Content: f.content}, nil
}

const generatedSoup = "Recipe: Miso Soup\nCuisine: Japanese\n\nIngredients:\n- Miso\n- Tofu\n\nSteps:\n1. Heat dashi\n2. Add miso\n"

func newTestService(gen Generator, cls Classifier, det Detector) *Service {
	return NewService(NewResolver(BuildIndex(sampleEntries()), DefaultFuzzyThreshold), gen, cls, det)
}

func TestService_AnswerLocal(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	svc := newTestService(gen, nil, nil)

	ans, err := svc.Answer(context.Background(), "  Omlette ")
	require.NoError(t, err)
	assert.Equal(t, StrategyFuzzy, ans.Strategy)
	assert.Equal(t, "Omelette", ans.Record.DishName)
	assert.Equal(t, SourceLocal, ans.Record.Source)
	assert.Equal(t, Render(ans.Record), ans.Text)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_AnswerGenerates(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, "miso soup", []string(nil)).Return(generatedSoup, nil).Once()
	svc := newTestService(gen, nil, nil)

	ans, err := svc.Answer(context.Background(), "miso soup")
	require.NoError(t, err)
	assert.Equal(t, StrategyGenerated, ans.Strategy)
	assert.Equal(t, "Miso Soup", ans.Record.DishName)
	assert.Equal(t, SourceGenerated, ans.Record.Source)
	assert.Equal(t, []string{"Miso", "Tofu"}, ans.Record.Ingredients)
	gen.AssertExpectations(t)
}

func TestService_AnswerErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		_, err := newTestService(nil, nil, nil).Answer(context.Background(), "   ")
		assert.ErrorIs(t, err, common.ErrInvalidRequest)
	})

	t.Run("no generator", func(t *testing.T) {
		t.Parallel()
		_, err := newTestService(nil, nil, nil).Answer(context.Background(), "unheard of dish")
		assert.ErrorIs(t, err, common.ErrUnavailable)
	})

	t.Run("generator failure", func(t *testing.T) {
		t.Parallel()
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, "unheard of dish", []string(nil)).
			Return("", common.ErrGatewayTimeout).Once()
		_, err := newTestService(gen, nil, nil).Answer(context.Background(), "unheard of dish")
		assert.ErrorIs(t, err, common.ErrGatewayTimeout)
		gen.AssertExpectations(t)
	})
}

func TestService_AnswerImage(t *testing.T) {
	t.Parallel()

	cls := new(mockClassifier)
	cls.On("Classify", mock.Anything, "img").Return("Spaghetti", nil).Once()
	svc := newTestService(nil, cls, nil)

	ans, err := svc.AnswerImage(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, StrategyExact, ans.Strategy)
	assert.Equal(t, "Spaghetti", ans.Record.DishName)
	cls.AssertExpectations(t)

	_, err = newTestService(nil, nil, nil).AnswerImage(context.Background(), "img")
	assert.ErrorIs(t, err, common.ErrUnavailable)

	failing := new(mockClassifier)
	failing.On("Classify", mock.Anything, "img").Return("", common.ErrNothingDetected).Once()
	_, err = newTestService(nil, failing, nil).AnswerImage(context.Background(), "img")
	assert.ErrorIs(t, err, common.ErrNothingDetected)
}

func TestService_AnswerIngredients(t *testing.T) {
	t.Parallel()

	t.Run("local overlap", func(t *testing.T) {
		t.Parallel()
		det := new(mockDetector)
		det.On("Detect", mock.Anything, "img").Return([]string{" Egg", "MILK", "egg"}, nil).Once()

		ans, err := newTestService(nil, nil, det).AnswerIngredients(context.Background(), "img")
		require.NoError(t, err)
		assert.Equal(t, StrategyIngredients, ans.Strategy)
		assert.Equal(t, "Omelette", ans.Record.DishName)
		assert.Equal(t, []string{"egg", "milk"}, ans.Record.IngredientsDetected)
	})

	t.Run("generated when nothing overlaps", func(t *testing.T) {
		t.Parallel()
		det := new(mockDetector)
		det.On("Detect", mock.Anything, "img").Return([]string{"miso", "tofu"}, nil).Once()
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, "", []string{"miso", "tofu"}).Return(generatedSoup, nil).Once()

		ans, err := newTestService(gen, nil, det).AnswerIngredients(context.Background(), "img")
		require.NoError(t, err)
		assert.Equal(t, StrategyGenerated, ans.Strategy)
		assert.Equal(t, []string{"miso", "tofu"}, ans.Record.IngredientsDetected)
		gen.AssertExpectations(t)
	})

	t.Run("detector missing", func(t *testing.T) {
		t.Parallel()
		_, err := newTestService(nil, nil, nil).AnswerIngredients(context.Background(), "img")
		assert.ErrorIs(t, err, common.ErrUnavailable)
	})
}

func TestService_Parse(t *testing.T) {
	t.Parallel()

	ans := newTestService(nil, nil, nil).Parse("Steps:\n1. Mix\n", "Salad")
	assert.Equal(t, "Salad", ans.Record.DishName)
	assert.Equal(t, StrategyGenerated, ans.Strategy)
	assert.Equal(t, "Dish Name: Salad\n\nIngredients: Not available\nSteps:\n1. Mix\n", ans.Text)
}

func TestRecipeService_Generate(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{content: generatedSoup}
	text, err := NewRecipeService(ai).Generate(context.Background(), "Miso Soup", []string{"tofu"})
	require.NoError(t, err)
	assert.Equal(t, generatedSoup, text)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], `for "Miso Soup" using tofu`)
	assert.Equal(t, "", ai.images[0])

	_, err = NewRecipeService(&fakeAI{content: "  "}).Generate(context.Background(), "x", nil)
	assert.ErrorIs(t, err, common.ErrAIServiceError)

	_, err = NewRecipeService(&fakeAI{err: common.ErrQueueFull}).Generate(context.Background(), "x", nil)
	assert.ErrorIs(t, err, common.ErrQueueFull)
}

func TestDescribeRequest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ` for "Soup"`, describeRequest(" Soup ", nil))
	assert.Equal(t, " that uses egg, milk", describeRequest("", []string{"egg", "milk"}))
	assert.Equal(t, "", describeRequest("", nil))
}

func TestFoodService_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "highest confidence wins",
			content: "```json\n{\"recognized_foods\":[{\"name\":\"Salad\",\"confidence\":0.4},{\"name\":\"Spaghetti\",\"confidence\":0.9}]}\n```",
			want:    "Spaghetti",
		},
		{
			name:    "unquoted keys",
			content: `{recognized_foods:[{name:"Omelette",confidence:0.7}]}`,
			want:    "Omelette",
		},
		{
			name:    "nothing recognised",
			content: `{"recognized_foods":[{"name":"  ","confidence":0.9}]}`,
			wantErr: common.ErrNothingDetected,
		},
		{
			name:    "below minimum confidence",
			content: `{"recognized_foods":[{"name":"pizza","confidence":0.02}]}`,
			wantErr: common.ErrLowConfidence,
		},
		{
			name:    "exactly minimum confidence",
			content: `{"recognized_foods":[{"name":"pizza","confidence":0.1}]}`,
			want:    "pizza",
		},
		{
			name:    "garbage",
			content: "I cannot help with that",
			wantErr: common.ErrAIServiceError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewFoodService(&fakeAI{content: tt.content}, 0.1).Classify(context.Background(), "data:image/png;base64,AAAA")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoodService_ClassifyWithoutMinimum(t *testing.T) {
	t.Parallel()

	got, err := NewFoodService(&fakeAI{content: `{"recognized_foods":[{"name":"pizza","confidence":0.02}]}`}, 0).
		Classify(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, "pizza", got)
}

func TestService_AnswerImageLowConfidence(t *testing.T) {
	t.Parallel()

	gen := new(mockGenerator)
	cls := NewFoodService(&fakeAI{content: `{"recognized_foods":[{"name":"pizza","confidence":0.02}]}`}, 0.1)

	_, err := newTestService(gen, cls, nil).AnswerImage(context.Background(), "img")
	require.ErrorIs(t, err, common.ErrLowConfidence)
	assert.Equal(t, 400, common.AsCustomError(err).Status)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngredientService_Detect(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{content: `Here you go: {"ingredients":[{"name":"Tomato","type":"vegetable"},{"name":" tomato "},{"name":"Basil"}],"summary":"fresh"}`}
	labels, err := NewIngredientService(ai).Detect(context.Background(), "img")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "basil"}, labels)
	assert.Equal(t, []string{"img"}, ai.images)

	_, err = NewIngredientService(&fakeAI{content: `{"ingredients":[]}`}).Detect(context.Background(), "img")
	assert.ErrorIs(t, err, common.ErrNothingDetected)

	upstream := errors.New("boom")
	_, err = NewIngredientService(&fakeAI{err: upstream}).Detect(context.Background(), "img")
	assert.ErrorIs(t, err, upstream)
}
