// Package schemas embeds the JSON Schemas for request bodies.
package schemas

import _ "embed"

//go:embed recommendation_request.schema.json
var RecommendationRequest []byte

//go:embed feedback_request.schema.json
var FeedbackRequest []byte
