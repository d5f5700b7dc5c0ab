package bot

const welcomeMessage = `Welcome to the Crypto Tracker Bot! 🚀
Track your wallets, monitor token prices, and stay updated on your portfolio.

Commands:
/help - View the list of commands
/addwallet - Add a wallet to track
/removewallet - Remove a wallet
/listwallets - List tracked wallets
/checkwallets - Check wallet balances
/gettokenprice - Fetch the price of a token
/subscribeprice - Subscribe to token price alerts
/unsubscribeprice - Unsubscribe from token price alerts
/portfolio - View your portfolio value
/clearwallets - Clear all tracked wallets`

const helpMessage = `Commands:
/start - Welcome message
/help - View the list of commands
/addwallet - Add a wallet to track
/removewallet - Remove a wallet
/listwallets - List tracked wallets
/checkwallets - Check wallet balances
/gettokenprice <token_id> - Fetch the price of a token
/subscribeprice <token_id> - Subscribe to token price alerts
/unsubscribeprice <token_id> - Unsubscribe from token price alerts
/portfolio - View your portfolio value
/clearwallets - Clear all tracked wallets`
