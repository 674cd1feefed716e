package model

import (
	"os"

	"github.com/app-sre/tabqa/pkg/env"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"

	DefaultTapasURL    = "https://api-inference.huggingface.co/models/google/tapas-base-finetuned-wtq"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

type Env struct {
	HuggingFaceToken string
	TapasURL         string

	SummaryProvider string
	SummaryAPIKey   string
	SummaryModel    string
	SummaryBaseURL  string
}

func NewModelEnv() *Env {
	return &Env{}
}

func (m *Env) Populate() error {
	token := os.Getenv("HUGGINGFACE_TOKEN")
	if token == "" {
		return &env.Error{Name: "HUGGINGFACE_TOKEN"}
	}
	m.HuggingFaceToken = token

	m.TapasURL = DefaultTapasURL
	if s := os.Getenv("HUGGINGFACE_MODEL_URL"); s != "" {
		m.TapasURL = s
	}

	m.SummaryProvider = ProviderGemini
	if s := os.Getenv("SUMMARY_PROVIDER"); s != "" {
		m.SummaryProvider = s
	}

	switch m.SummaryProvider {
	case ProviderGemini:
		return m.populateSummary("GOOGLE_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", DefaultGeminiModel)
	case ProviderOpenAI:
		return m.populateSummary("OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", DefaultOpenAIModel)
	case ProviderNone:
		return nil
	default:
		return &env.TypeError{Name: "SUMMARY_PROVIDER"}
	}
}

func (m *Env) populateSummary(keyName, modelName, urlName, defaultModel string) error {
	key := os.Getenv(keyName)
	if key == "" {
		return &env.Error{Name: keyName}
	}
	m.SummaryAPIKey = key

	m.SummaryModel = defaultModel
	if s := os.Getenv(modelName); s != "" {
		m.SummaryModel = s
	}
	m.SummaryBaseURL = os.Getenv(urlName)

	return nil
}
