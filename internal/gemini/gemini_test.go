package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("全新的"),
				genai.Blob{MIMEType: "image/png"},
				genai.Text("视频模型 "),
			}},
		}},
	}

	out, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "全新的视频模型", out)
}

func TestResponseText_Empty(t *testing.T) {
	_, err := responseText(nil)
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}},
	})
	assert.Error(t, err)
}
