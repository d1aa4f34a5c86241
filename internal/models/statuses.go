package models

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// BadgeSuffix добавляется к claim при одобрении верификации.
const BadgeSuffix = " (Verified)"

// DeletedUserName показывается вместо автора, если аккаунт удален.
const DeletedUserName = "deleted user"
