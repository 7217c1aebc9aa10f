package client

// Account is the authenticated user's profile.
type Account struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

// WatchlistItem is one tracked movie or show on the user's watchlist.
type WatchlistItem struct {
	ID        int64  `json:"id"`
	TitleID   string `json:"titleId"`
	Title     string `json:"title"`
	MediaType string `json:"mediaType"` // "movie" or "show"
	Status    string `json:"status"`    // "planned", "watching", "watched"
	Rating    int    `json:"rating"`
	AddedAt   string `json:"addedAt"`
}

// WatchlistPage is one page of the paginated watchlist listing.
type WatchlistPage struct {
	Items      []WatchlistItem `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// FavoriteItem is one title the user marked as a favorite.
type FavoriteItem struct {
	ID        int64  `json:"id"`
	TitleID   string `json:"titleId"`
	Title     string `json:"title"`
	MediaType string `json:"mediaType"`
}

// FavoritesPage is one page of the paginated favorites listing.
type FavoritesPage struct {
	Items      []FavoriteItem `json:"items"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// Post is a shared note about a watched title, visible to the user's circles.
type Post struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"authorId"`
	TitleID   string `json:"titleId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// PostsPage is one page of the paginated posts feed.
type PostsPage struct {
	Items      []Post `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

// Circle is a group of users who share watch activity with each other.
type Circle struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"memberCount"`
}
