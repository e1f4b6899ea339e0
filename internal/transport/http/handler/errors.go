package handler

const (
	errInternalServer = "server error, please try again."

	errMissingCredentials = "please enter an email and password."
	errEmailTaken         = "this email already has an account."
	errBadCredentials     = "email or password is wrong."

	errMissingGoalFields = "please provide a label, amount, and lock date."
	errAmountNotPositive = "amount must be a positive number."
	errBadLockDate       = "lock date must be a valid date."
	errGoalNotFound      = "savings goal not found."
	errGoalWithdrawn     = "this goal was already withdrawn."
	errWithdrawalLocked  = "this goal does not allow emergency withdrawals yet."
)
