package sentiment

import "review_insights/internal/domain"

// defaultLexicon weights follow the AFINN convention: integers in [-5, 5].
// Intensifiers are deliberately absent; they only affect intensity.
var defaultLexicon = map[string]float64{
	// positive
	"amazing": 4, "awesome": 4, "beautiful": 3, "best": 3, "better": 2,
	"bargain": 2, "charming": 3, "clean": 2, "comfortable": 2, "cozy": 2,
	"courteous": 2, "creative": 2, "crispy": 1, "delicious": 4, "delight": 3,
	"delightful": 3, "efficient": 2, "enjoy": 2, "enjoyable": 2, "enjoyed": 2,
	"excellent": 3, "exceptional": 4, "exquisite": 4, "fabulous": 4, "fantastic": 4,
	"favorite": 2, "favourite": 2, "fine": 2, "flavorful": 3, "fresh": 2,
	"friendly": 2, "fun": 3, "generous": 2, "glad": 3, "good": 3,
	"gorgeous": 3, "great": 3, "happy": 3, "heavenly": 4, "helpful": 2,
	"impeccable": 4, "impressed": 3, "impressive": 3, "incredible": 4, "juicy": 2,
	"kind": 2, "like": 2, "liked": 2, "love": 3, "loved": 3,
	"lovely": 3, "memorable": 3, "nice": 3, "ok": 1, "okay": 1,
	"outstanding": 5, "perfect": 3, "perfectly": 3, "pleasant": 3, "pleased": 3,
	"polite": 2, "professional": 2, "prompt": 2, "quick": 1, "quiet": 1,
	"reasonable": 1, "recommend": 2, "recommended": 2, "relaxing": 2, "satisfied": 2,
	"satisfying": 2, "spacious": 1, "special": 2, "spotless": 3, "stunning": 4,
	"superb": 5, "tasty": 3, "tender": 2, "thank": 2, "thanks": 2,
	"wonderful": 4, "worth": 2, "worthy": 2, "welcoming": 2, "warm": 1,
	"yummy": 3, "affordable": 2, "attentive": 2, "authentic": 2, "accommodating": 2,

	// negative
	"angry": -3, "annoyed": -2, "annoying": -2, "awful": -3, "bad": -3,
	"bland": -2, "boring": -3, "broken": -1, "burnt": -3, "careless": -2,
	"cold": -1, "complain": -2, "complaint": -2, "cramped": -2, "crowded": -1,
	"dirty": -3, "disappointed": -2, "disappointing": -2, "disappointment": -2, "disgusting": -4,
	"dreadful": -3, "dry": -1, "expensive": -1, "fail": -2, "failed": -2,
	"filthy": -3, "greasy": -2, "gross": -3, "hate": -3, "hated": -3,
	"horrible": -3, "ignored": -2, "inedible": -4, "issue": -1, "lousy": -3,
	"loud": -1, "mediocre": -1, "mess": -2, "messy": -2, "nasty": -3,
	"noisy": -1, "overcooked": -2, "overpriced": -3, "pathetic": -3, "poor": -2,
	"poorly": -2, "pricey": -1, "pricy": -1, "problem": -2, "problems": -2,
	"ripoff": -3, "rude": -3, "sad": -2, "sick": -2, "slow": -2,
	"smelly": -2, "soggy": -2, "sour": -1, "stale": -2, "tasteless": -2,
	"terrible": -3, "undercooked": -3, "unfriendly": -2, "unprofessional": -2, "unacceptable": -3,
	"upset": -2, "waste": -1, "wasted": -2, "worse": -3, "worst": -3,
	"wrong": -2, "dull": -2, "inattentive": -2, "sloppy": -2, "stingy": -2,
}

var defaultCategoryKeywords = map[domain.Category][]string{
	domain.CategoryFood: {
		"food", "dish", "menu", "taste", "delicious", "flavor", "meal", "eat",
		"cuisine", "ingredient", "cook", "chef", "dessert", "drink", "appetizer",
		"entree", "breakfast", "lunch", "dinner", "portion", "spicy", "sweet",
		"savory", "bitter", "salty", "juicy", "tender", "crispy", "fresh", "stale",
	},
	domain.CategoryService: {
		"service", "staff", "waiter", "waitress", "server", "attentive", "polite",
		"friendly", "rude", "slow", "quick", "prompt", "reservation", "manager",
		"attention", "helpful", "efficient", "professional", "courteous",
	},
	domain.CategoryAmbiance: {
		"ambiance", "atmosphere", "decor", "interior", "music", "noise", "quiet",
		"loud", "comfort", "seating", "table", "chair", "light", "dark", "cozy",
		"crowd", "view", "design", "layout", "clean", "dirty", "spacious", "cramped",
	},
	domain.CategoryValue: {
		"price", "value", "expensive", "cheap", "affordable", "worth", "cost",
		"overpriced", "bargain", "money", "bill", "payment", "reasonable", "pricy",
	},
}

var defaultStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
	"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "her",
	"hers", "herself", "it", "its", "itself", "they", "them", "their", "theirs",
	"themselves", "what", "which", "who", "whom", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during", "before", "after",
	"above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
	"under", "again", "further", "then", "once", "here", "there", "when", "where",
	"why", "how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "s", "t", "can", "will", "just", "don", "should", "now",
}

var defaultIntensifiers = []string{"very", "really", "extremely", "absolutely", "incredibly"}
