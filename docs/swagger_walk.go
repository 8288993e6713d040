package docs

// @title           Walk Tracking Service API
// @version         1.0
// @description     Walk tracking service handles live GPS tracking of dog walks, route history with reverse-geocoded addresses, and the owner-walker chat. Supports real-time location updates over WebSocket.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
