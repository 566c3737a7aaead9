// Package chat implements the live advisor chat session over websocket.
//
// The backend exposes a websocket endpoint where authenticated users can
// exchange messages with an advisor. Frames are JSON objects carrying a
// role ("user", "advisor", "system") and the message text.
package chat
