package billing

import "net/http"

// RequirePlan gates a route group behind a minimum plan. The org is taken
// from the ?org= query parameter, matching the rest of the API surface.
func RequirePlan(store *Store, min Plan) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orgID := r.URL.Query().Get("org")
			if orgID == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org query parameter is required"})
				return
			}

			plan, err := store.EffectivePlan(r.Context(), orgID)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			if !plan.AtLeast(min) {
				writeJSON(w, http.StatusPaymentRequired, map[string]string{
					"error": "this feature requires the " + string(min) + " plan",
					"plan":  string(plan),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
