package common

// AuthorizationHeader carries the bearer access token on protected requests.
const AuthorizationHeader = "Authorization"

// RefreshCookieName is the name of the httpOnly cookie carrying the refresh
// token. The cookie is scoped to the auth route prefix and is never exposed
// in a JSON body.
const RefreshCookieName = "rt"
