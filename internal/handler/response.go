package handler

import (
	"time"

	"conduit/internal/model"
)

// UserPayload is the public projection of a user, with a freshly signed token.
type UserPayload struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token,omitempty"`
}

// UserResponse is the envelope for single-user endpoints.
type UserResponse struct {
	User UserPayload `json:"user"`
}

// AuthorPayload is the trimmed author projection nested in article payloads.
type AuthorPayload struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// ArticlePayload is the public projection of an article.
type ArticlePayload struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Body           string        `json:"body"`
	TagList        []string      `json:"tagList"`
	FavoritesCount int           `json:"favoritesCount"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Author         AuthorPayload `json:"author"`
}

// ArticleResponse is the envelope for single-article endpoints.
type ArticleResponse struct {
	Article ArticlePayload `json:"article"`
}

// ArticlesResponse is the envelope for the listing endpoint. ArticlesCount
// reports the full filtered count, not the page size.
type ArticlesResponse struct {
	Articles      []ArticlePayload `json:"articles"`
	ArticlesCount int64            `json:"articlesCount"`
}

// TagsResponse is the envelope for the tag catalog.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

func buildUserResponse(user *model.User, token string) UserResponse {
	return UserResponse{
		User: UserPayload{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Bio:      user.Bio,
			Image:    user.Image,
			Token:    token,
		},
	}
}

func buildArticlePayload(article *model.Article) ArticlePayload {
	tagList := article.TagList
	if tagList == nil {
		tagList = model.TagList{}
	}
	return ArticlePayload{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tagList,
		FavoritesCount: article.FavoritesCount,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Author: AuthorPayload{
			ID:       article.Author.ID,
			Username: article.Author.Username,
			Email:    article.Author.Email,
			Bio:      article.Author.Bio,
			Image:    article.Author.Image,
		},
	}
}

func buildArticleResponse(article *model.Article) ArticleResponse {
	return ArticleResponse{Article: buildArticlePayload(article)}
}
