package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like marks exactly one of a video, comment or tweet as liked by a user.
// The unset references stay absent from the document so existence filters
// can distinguish the three kinds.
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// LikedVideo is a like joined with the liked video document.
type LikedVideo struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	LikedBy primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	Video   Video              `bson:"video" json:"video"`
}
