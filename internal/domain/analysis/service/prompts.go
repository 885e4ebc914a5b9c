package service

// Prompt templates sent to the model. Responses are requested as bare JSON;
// the markdown fence cleanup in the analyzer is a fallback for models that
// wrap output anyway.

const analysisPrompt = `Analyze the following text and return a JSON response with:
1. sentiment_score: a float between -1 (very negative) and 1 (very positive)
2. sentiment_label: one of "positive", "neutral", or "negative"
3. entities: a list of important named entities (e.g., PERSON, ORGANIZATION, LOCATION, PRODUCT, EVENT)
4. themes: a list of main topics or themes
5. key_phrases: a list of significant phrases

Ensure the response is *only* a valid JSON object. Do not include any markdown formatting like triple backticks.`

const bulkAnalysisPrompt = `Analyze the following collection of YouTube comments and provide a comprehensive JSON analysis with:

1. overall_sentiment: {
    "positive": count,
    "neutral": count,
    "negative": count,
    "average_score": float (-1 to 1)
}

2. top_entities: [
    {"name": "entity_name", "count": frequency, "type": "PERSON|ORGANIZATION|LOCATION|PRODUCT|EVENT|OTHER"}
]

3. key_themes: [
    {"theme": "theme_name", "frequency": count, "sentiment": "positive|neutral|negative", "sample_comments": ["comment1", "comment2"]}
]

4. emotion_analysis: {
    "joy": count,
    "anger": count,
    "sadness": count,
    "fear": count,
    "surprise": count,
    "trust": count,
    "anticipation": count
}

5. engagement_insights: {
    "constructive_feedback": count,
    "criticism": count,
    "suggestions": count,
    "questions": count,
    "praise": count
}

Return *only* a valid JSON object without any markdown formatting.

Comments to analyze (each prefaced with 'Comment N:'):`

const ideaExtractionPrompt = `Extract actionable insights and improvement suggestions from the following text.
Focus on:
- Specific suggestions for improvement
- Common user requests or needs
- Identified pain points or issues
- Opportunities for enhancement

Format the response as a numbered bulleted list. Each suggestion should start with a number followed by a period (e.g., "1. Improve X"). Do not include any additional commentary or introduction/conclusion text.`
