package busca

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const ModeloPadrao = "gemini-3-flash-preview"

// RankerGemini pede ao Gemini a lista JSON de ids que atendem à consulta,
// tolerando erros de digitação.
type RankerGemini struct {
	client *genai.Client
	modelo string
}

func NovoRankerGemini(ctx context.Context, apiKey, modelo string) (*RankerGemini, error) {
	if modelo == "" {
		modelo = ModeloPadrao
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente gemini: %w", err)
	}
	return &RankerGemini{client: client, modelo: modelo}, nil
}

func montarPrompt(consulta string, candidatos []Candidato) (string, error) {
	itens, err := json.Marshal(candidatos)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User search query: %q.\nAvailable items: %s.\n"+
		"Analyze the user query. Typos might happen. Return a JSON array of IDs that match.",
		consulta, itens), nil
}

func (g *RankerGemini) Ranquear(ctx context.Context, consulta string, candidatos []Candidato) ([]string, error) {
	prompt, err := montarPrompt(consulta, candidatos)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelo, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("erro na chamada ao gemini: %w", err)
	}
	return decodificarIDs(resp.Text())
}

// decodificarIDs aceita resposta vazia como lista vazia.
func decodificarIDs(texto string) ([]string, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(texto), &ids); err != nil {
		return nil, fmt.Errorf("resposta do gemini fora do formato: %w", err)
	}
	return ids, nil
}
