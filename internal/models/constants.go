package models

const (
	DefaultMaxPages     = 50
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
	DefaultRerankTopN   = 3
)

// NotFoundAnswer is the fixed reply the model is instructed to give when
// the grounding context does not cover the question.
const NotFoundAnswer = "I'm sorry, I couldn't find information about that on this website."

var (
	SystemPromptTemplate = `You are an expert assistant for the website being discussed. Your goal is to provide accurate and helpful answers based ONLY on the context provided below. Be friendly and conversational. If you don't know the answer or it's not in the context, say "` + NotFoundAnswer + `" DO NOT make up information.

Context:
%s`

	RerankPromptTemplate = `Given the following user query and a list of document snippets, score each document for its relevance to the query from 0 to 10. The query is: "%s". Respond ONLY with a JSON object where keys are the document index (as a string, e.g., "0", "1") and values are the scores.

Documents:
%s

JSON Response:`
)
