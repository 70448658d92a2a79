// Package http provides the optional HTTP adapter for the page builder
// services.
//
// Routes mount under the configured base path (default /api):
//   - Components: /components, /components/types, /components/type/{type},
//     /components/{id}
//   - Pages: /pages, /pages/slug/{slug}, /pages/{id},
//     /pages/{id}/publish, /pages/{id}/unpublish
//   - Images: /images, /images/upload, /images/upload-from-url,
//     /images/file/{filename}, /images/{id}
//   - Groups: /groups, /groups/{id}, /groups/{id}/invite,
//     /groups/{id}/messages
//   - Expenses: /consumption, /consumption/{id}
//
// Callers are identified by the X-User-ID header; host applications put
// their own session handling in front. Handlers can be registered on any
// mux via API.Register.
package http
