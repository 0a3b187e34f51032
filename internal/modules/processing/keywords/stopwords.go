package keywords

var stopwords = buildStopwords(
	"a", "an", "the", "and", "or", "but", "if", "in", "on", "at", "of", "for", "to", "with", "from", "by", "as",
	"is", "be", "are", "was", "were", "been", "being", "it", "its", "itself", "himself", "herself", "themselves",
	"this", "that", "these", "those", "i", "you", "he", "she", "we", "they", "them", "him", "her", "my", "your",
	"our", "their", "me", "us", "ll", "ve", "d", "s", "t", "not", "no", "yes", "do", "does", "did", "done",
	"doing", "have", "has", "had", "having", "can", "could", "should", "would", "may", "might", "must", "will",
	"just", "than", "then", "there", "here", "when", "where", "why", "how", "into", "out", "up", "down", "over",
	"under",
)

func buildStopwords(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
