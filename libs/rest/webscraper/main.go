package webscraper

type GetScrapeResponse struct {
	Content string `json:"content"`
}
