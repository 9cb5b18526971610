/*
Package std contains standard implementations of a number
of components.

It is a good place to see how the barter extensions are wired
together: the native currency, the asset program and the escrow
that trades assets of that program.
*/
package std

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/token"
	"github.com/iov-one/barter/x/utils"
)

// TokenProgram is the name of the asset program registered by Router.
const TokenProgram = "token"

// Chain returns a chain of decorators, to handle logging,
// recovery and atomicity of every transaction.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// a failed transaction never changes the state
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Router returns a router dispatching to all barter extensions. The asset
// program accepts signatures of the user authenticator and of addresses
// derived by the escrow.
func Router(auth x.Authenticator) *app.Router {
	bank := cash.NewController()
	tokens := token.NewService(TokenProgram, x.ChainAuth(auth, escrow.Authenticate{}), bank)

	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	token.RegisterRoutes(r, tokens)
	escrow.RegisterRoutes(r, auth, tokens, bank)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain.
func Stack(auth x.Authenticator) barter.Handler {
	return Chain().WithHandler(Router(auth))
}

// Initializers loads the genesis state of all extensions.
func Initializers() barter.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		escrow.Initializer{},
	)
}
