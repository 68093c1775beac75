package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public read paths (product catalog and GraphQL are read-only, no auth)
	return []string{"/api/products", "/api/products/:id", "/api/products/search", "/graphql"}
}
