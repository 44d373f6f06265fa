package constants

// User-facing messages. The client base is Arabic-speaking, so API
// messages are Arabic.
const (
	MSG_INTERNAL_ERROR = "حدث خطأ غير متوقع"
	MSG_UNAUTHORIZED   = "يرجى تسجيل الدخول"
	MSG_FORBIDDEN      = "غير مصرح بالوصول"
	MSG_NOT_FOUND      = "المورد غير موجود"

	// Auth
	MSG_MISSING_CREDENTIALS = "يرجى إدخال البريد الإلكتروني وكلمة المرور"
	MSG_INVALID_EMAIL       = "صيغة البريد الإلكتروني غير صحيحة"
	MSG_WEAK_PASSWORD       = "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	MSG_EMAIL_TAKEN         = "البريد الإلكتروني مسجل مسبقاً"
	MSG_PHONE_TAKEN         = "رقم الهاتف مسجل مسبقاً"
	MSG_INVALID_CREDENTIALS = "بيانات الدخول غير صحيحة"
	MSG_NEEDS_VERIFICATION  = "يرجى تفعيل حسابك أولاً"
	MSG_USER_NOT_FOUND      = "المستخدم غير موجود"
	MSG_INVALID_TOKEN       = "التوكن غير صالح أو منتهي"
	MSG_ACCOUNT_VERIFIED    = "تم تفعيل حسابك بنجاح"
	MSG_ALREADY_VERIFIED    = "الحساب مفعل بالفعل"
	MSG_PASSWORD_UPDATED    = "تم تحديث كلمة المرور بنجاح"
	MSG_WRONG_PASSWORD      = "كلمة المرور الحالية غير صحيحة"
	MSG_RESET_LINK_SENT     = "إذا كان البريد الإلكتروني مسجلاً، سيصلك رابط إعادة التعيين"
	MSG_PROFILE_UPDATED     = "تم تحديث الملف الشخصي بنجاح"
	MSG_REGISTERED          = "تم إنشاء الحساب بنجاح، يرجى تفعيل بريدك الإلكتروني"
	MSG_LOGGED_OUT          = "تم تسجيل الخروج بنجاح"
	MSG_VERIFICATION_RESENT = "تم إرسال بريد التفعيل بنجاح"
	MSG_AVATAR_REQUIRED     = "الصورة الشخصية مطلوبة"
	MSG_AVATAR_UPDATED      = "تم تحديث الصورة الشخصية بنجاح"

	// Places
	MSG_PLACE_NOT_FOUND = "المكان غير موجود"
	MSG_PLACE_CREATED   = "تم إنشاء المكان بنجاح"
	MSG_PLACE_UPDATED   = "تم تحديث المكان بنجاح"
	MSG_PLACE_DELETED   = "تم حذف المكان بنجاح"
	MSG_PLACE_REQUIRED  = "الاسم العربي والإنكليزي والفئة مطلوبة"

	// Reviews
	MSG_RATING_REQUIRED  = "التقييم مطلوب"
	MSG_REVIEW_EXISTS    = "لديك مراجعة سابقة لهذا المكان"
	MSG_REVIEW_NOT_FOUND = "المراجعة غير موجودة"
	MSG_REVIEW_CREATED   = "تم إضافة المراجعة بنجاح"
	MSG_REVIEW_UPDATED   = "تم تحديث المراجعة بنجاح"
	MSG_REVIEW_DELETED   = "تم حذف المراجعة بنجاح"

	// Favorites
	MSG_FAVORITE_ADDED     = "تم إضافة المكان إلى المفضلة بنجاح"
	MSG_FAVORITE_UPDATED   = "تم تحديث المفضلة بنجاح"
	MSG_FAVORITE_REMOVED   = "تم إزالة المكان من المفضلة"
	MSG_FAVORITE_NOT_FOUND = "المكان غير موجود في المفضلة"

	// Bookings
	MSG_BOOKING_FIELDS_REQUIRED = "المكان ونوع الخدمة وتاريخ الحجز مطلوبون"
	MSG_BOOKING_PAST_DATE       = "لا يمكن الحجز في تاريخ ماضي"
	MSG_BOOKING_NOT_FOUND       = "الحجز غير موجود"
	MSG_BOOKING_NOT_EDITABLE    = "الحجز غير موجود أو غير قابل للتعديل"
	MSG_BOOKING_NOT_CANCELLABLE = "الحجز غير موجود أو غير قابل للإلغاء"
	MSG_BOOKING_UPDATE_WINDOW   = "لا يمكن تعديل الحجز قبل أقل من 48 ساعة من الموعد"
	MSG_BOOKING_CANCEL_WINDOW   = "لا يمكن إلغاء الحجز قبل أقل من 24 ساعة من الموعد"
	MSG_BOOKING_NOT_CONFIRMABLE = "الحجز غير قابل للتأكيد"
	MSG_BOOKING_NOT_COMPLETABLE = "الحجز غير قابل للإتمام"
	MSG_BOOKING_BEFORE_DATE     = "لا يمكن إتمام الحجز قبل تاريخه"
	MSG_BOOKING_CREATED         = "تم إنشاء الحجز بنجاح"
	MSG_BOOKING_UPDATED         = "تم تحديث الحجز بنجاح"
	MSG_BOOKING_CANCELLED       = "تم إلغاء الحجز بنجاح"
	MSG_BOOKING_CONFIRMED       = "تم تأكيد الحجز بنجاح"
	MSG_BOOKING_COMPLETED       = "تم إتمام الحجز بنجاح"
	MSG_BOOKING_CONFLICT        = "تم تعديل الحجز من جهة أخرى، يرجى المحاولة مجدداً"

	// Payments
	MSG_PAYMENT_UNAVAILABLE   = "خدمة الدفع غير متوفرة حالياً"
	MSG_BOOKING_NOT_PAYABLE   = "الحجز غير قابل للدفع"
	MSG_PAYMENT_SESSION_ERROR = "حدث خطأ أثناء إنشاء جلسة الدفع"
	MSG_SESSION_ID_REQUIRED   = "معرف الجلسة مطلوب"
	MSG_SESSION_EXPIRED       = "انتهاء صلاحية جلسة الدفع"
	MSG_PAYMENT_FAILED        = "فشل في عملية الدفع"
	MSG_PAYMENT_CANCELLED     = "تم إلغاء عملية الدفع"
	MSG_INVOICE_UNPAID        = "لا يمكن إصدار فاتورة لحجز غير مدفوع"

	// Chat
	MSG_CHAT_NOT_FOUND   = "المحادثة غير موجودة"
	MSG_CHAT_CLOSED      = "تم إغلاق المحادثة"
	MSG_CHAT_DELETED     = "تم حذف المحادثة"
	MSG_CHAT_ACCEPTED    = "تم قبول المحادثة"
	MSG_CHAT_TAKEN       = "المحادثة مسندة لوكيل آخر"
	MSG_MESSAGE_REQUIRED = "نص الرسالة مطلوب"

	// Itineraries
	MSG_ITINERARY_NOT_FOUND     = "خطة الرحلة غير موجودة"
	MSG_ITINERARY_CREATED       = "تم إنشاء خطة الرحلة بنجاح"
	MSG_ITINERARY_UPDATED       = "تم تحديث خطة الرحلة بنجاح"
	MSG_ITINERARY_DELETED       = "تم حذف خطة الرحلة بنجاح"
	MSG_ITINERARY_DAY_ADDED     = "تم إضافة اليوم إلى خطة الرحلة"
	MSG_ITINERARY_ITEM_ADDED    = "تم إضافة المكان إلى خطة الرحلة"
	MSG_ITINERARY_DAY_NOT_FOUND = "اليوم غير موجود في خطة الرحلة"

	// Notifications
	MSG_NOTIFICATION_NOT_FOUND = "الإشعار غير موجود"
)
