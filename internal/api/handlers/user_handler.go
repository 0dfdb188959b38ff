// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"

	"ride-booking-api-server/internal/auth"
	"ride-booking-api-server/internal/cipher"
	"ride-booking-api-server/internal/mailer"
	"ride-booking-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserHandler struct {
	DB      *mongo.Database
	Cipher  *cipher.Cipher
	Mailer  *mailer.Mailer
	SiteURL string
}

func (h *UserHandler) users() *mongo.Collection {
	return h.DB.Collection("users")
}

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=user driver admin"`
}

// Register creates a new account and returns its profile plus a JWT.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	count, err := h.users().CountDocuments(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := h.users().InsertOne(context.Background(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"_id":       user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"token":     token,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error authenticating user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      user.Role,
		"token":     token,
	})
}

// GetAllUsers lists every account.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	cursor, err := h.users().Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding users"})
		return
	}

	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

// GetAllReservations returns every account with its reservation array,
// the admin reservation dashboard feed.
func (h *UserHandler) GetAllReservations(c *gin.Context) {
	cursor, err := h.users().Find(context.Background(), bson.M{"selectedReservations.0": bson.M{"$exists": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching all reservations."})
		return
	}
	defer cursor.Close(context.Background())

	var accounts []models.User
	if err = cursor.All(context.Background(), &accounts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching all reservations."})
		return
	}

	if accounts == nil {
		accounts = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{"reservations": accounts})
}

// GetUserByID returns the full account document, reservations included.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var user models.User
	err = h.users().FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user details"})
		}
		return
	}

	h.decryptBilling(&user)

	c.JSON(http.StatusOK, user)
}

// GetUserProfile returns the short profile.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var user models.User
	err = h.users().FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
	})
}

type UpdateProfileRequest struct {
	Password       string                 `json:"password"`
	NewPassword    string                 `json:"newPassword"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        *models.Address        `json:"address"`
	BillingDetails *models.BillingDetails `json:"billingDetails"`
}

// UpdateUserProfile merges provided fields into the profile. Changing
// the password requires the current one. Billing card details are
// encrypted at rest.
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err = h.users().FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user profile"})
		}
		return
	}

	if req.Password != "" && !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Current password is incorrect"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
		set["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
		set["lastName"] = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
		set["email"] = req.Email
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.BillingDetails != nil {
		billing, err := h.encryptBilling(*req.BillingDetails)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user profile"})
			return
		}
		set["billingDetails"] = billing
	}
	if req.NewPassword != "" {
		hashed, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user profile"})
			return
		}
		set["password"] = hashed
	}

	_, err = h.users().UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user profile"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"token":     token,
	})
}

type VerifyPasswordRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyPassword checks the current password without changing anything.
func (h *UserHandler) VerifyPassword(c *gin.Context) {
	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var user models.User
	err = h.users().FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error verifying password"})
		}
		return
	}

	if auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusOK, gin.H{"valid": true})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Current password is incorrect"})
	}
}

type ChangePasswordRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangePassword rotates the password after re-verifying identity and
// the current password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{
		"email":     req.Email,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error changing password"})
		return
	}

	_, err = h.users().UpdateOne(context.Background(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error changing password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

type FindAccountRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// FindAccount locates an account by email plus name, for the
// forgot-password flow.
func (h *UserHandler) FindAccount(c *gin.Context) {
	var req FindAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, first name, and last name are required"})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{
		"email":     req.Email,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword stores a short-lived reset token on the account and
// mails the reset link.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No user found with that email"})
		return
	}

	resetToken, err := auth.GenerateResetToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending password reset email"})
		return
	}

	_, err = h.users().UpdateOne(context.Background(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"resetPasswordToken": resetToken, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending password reset email"})
		return
	}

	resetURL := h.SiteURL + "/reset-password?token=" + resetToken
	if err := h.Mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending password reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent to email"})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
	ResetToken  string `json:"resetToken"`
}

// ResetPassword sets a new password after checking the stored reset token.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and password are required"})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
		return
	}

	if req.ResetToken != "" {
		if user.ResetPasswordToken != req.ResetToken {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
			return
		}
		if _, err := auth.ParseToken(req.ResetToken); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
			return
		}
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	_, err = h.users().UpdateOne(context.Background(),
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"password": hashed, "updatedAt": time.Now()},
			"$unset": bson.M{"resetPasswordToken": ""},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

// exactInsensitive builds an anchored case-insensitive match for a
// user-supplied value.
func exactInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

type SearchReservationRequest struct {
	LastName string `json:"lastName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// SearchReservation finds the account (and so its reservations) by last
// name, email and phone.
func (h *UserHandler) SearchReservation(c *gin.Context) {
	var req SearchReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{
		"lastName": exactInsensitive(req.LastName),
		"email":    exactInsensitive(req.Email),
		"phone":    exactInsensitive(req.Phone),
	}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user details"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type SearchByPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// SearchByPhone finds the account by phone number alone.
func (h *UserHandler) SearchByPhone(c *gin.Context) {
	var req SearchByPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := h.users().FindOne(context.Background(), bson.M{
		"phone": exactInsensitive(req.Phone),
	}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user details"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateCompanyProfileRequest struct {
	BusinessName    string          `json:"businessName"`
	Address         *models.Address `json:"address"`
	MetroArea       string          `json:"metroArea"`
	OfficePhone     string          `json:"officePhone"`
	CellPhone       string          `json:"cellPhone"`
	OperatorLicense string          `json:"operatorLicense"`
	TaxID           string          `json:"taxId"`
	Area            string          `json:"area"`
	Notification    string          `json:"notification"`
	NLAMember       string          `json:"nlaMember"`
}

// UpdateCompanyProfile merges provided operator details into the driver's
// company profile; unset keys keep their prior value.
func (h *UserHandler) UpdateCompanyProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var req UpdateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err = h.users().FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating company profile"})
		}
		return
	}

	profile := models.CompanyProfile{}
	if user.CompanyProfile != nil {
		profile = *user.CompanyProfile
	}
	if req.BusinessName != "" {
		profile.BusinessName = req.BusinessName
	}
	if req.Address != nil {
		if req.Address.Line1 != "" {
			profile.Address.Line1 = req.Address.Line1
		}
		if req.Address.City != "" {
			profile.Address.City = req.Address.City
		}
		if req.Address.State != "" {
			profile.Address.State = req.Address.State
		}
		if req.Address.PostalCode != "" {
			profile.Address.PostalCode = req.Address.PostalCode
		}
		if req.Address.Country != "" {
			profile.Address.Country = req.Address.Country
		}
	}
	if req.MetroArea != "" {
		profile.MetroArea = req.MetroArea
	}
	if req.OfficePhone != "" {
		profile.OfficePhone = req.OfficePhone
	}
	if req.CellPhone != "" {
		profile.CellPhone = req.CellPhone
	}
	if req.OperatorLicense != "" {
		profile.OperatorLicense = req.OperatorLicense
	}
	if req.TaxID != "" {
		profile.TaxID = req.TaxID
	}
	if req.Area != "" {
		profile.Area = req.Area
	}
	if req.Notification != "" {
		profile.Notification = req.Notification
	}
	if req.NLAMember != "" {
		profile.NLAMember = req.NLAMember
	}

	_, err = h.users().UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"companyProfile": profile, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating company profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company profile updated successfully",
		"company": profile,
	})
}

// encryptBilling protects the card summary before it is stored.
func (h *UserHandler) encryptBilling(b models.BillingDetails) (models.BillingDetails, error) {
	var err error
	if b.CardHolderName != "" {
		if b.CardHolderName, err = h.Cipher.Encrypt(b.CardHolderName); err != nil {
			return b, err
		}
	}
	if b.Last4 != "" {
		if b.Last4, err = h.Cipher.Encrypt(b.Last4); err != nil {
			return b, err
		}
	}
	return b, nil
}

// decryptBilling restores the stored card summary for API responses.
// Legacy plaintext values are passed through unchanged.
func (h *UserHandler) decryptBilling(user *models.User) {
	if user.BillingDetails == nil {
		return
	}
	if v, err := h.Cipher.Decrypt(user.BillingDetails.CardHolderName); err == nil {
		user.BillingDetails.CardHolderName = v
	}
	if v, err := h.Cipher.Decrypt(user.BillingDetails.Last4); err == nil {
		user.BillingDetails.Last4 = v
	}
}
