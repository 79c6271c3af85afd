package names

// FamilyNames are common Vietnamese family names.
var FamilyNames = []string{
	"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Huỳnh", "Phan", "Vũ", "Võ", "Đặng",
	"Bùi", "Đỗ", "Hồ", "Ngô", "Dương", "Lý", "Đinh", "Trương", "Đoàn", "Mai",
	"Văn", "Tạ", "Trịnh", "Cao", "Quách", "Hà", "Châu", "Tô", "La", "Giang", "Đào",
}

// MiddleNames are frequent middle names, unisex and gendered forms.
var MiddleNames = []string{
	"Thị", "Văn", "Hữu", "Ngọc", "Minh", "Quang", "Gia", "Anh", "Thuỳ", "Phương",
	"Thanh", "Tuấn", "Hải", "Đình", "Tiến", "Bảo", "Xuân", "Kim", "Diệu", "Trung",
	"Hoài", "Thế", "Khánh", "Thùy", "Thảo", "Mạnh", "Phúc", "Thắng", "Phú", "Đức",
}

// GivenNames mixes common male and female given names.
var GivenNames = []string{
	"An", "Anh", "Bách", "Bảo", "Bích", "Bình", "Châu", "Chi", "Dũng", "Duy", "Duyên",
	"Giang", "Hiếu", "Hiền", "Hoa", "Hoà", "Hoài", "Hùng", "Huy", "Huyền", "Hương",
	"Khánh", "Khang", "Khoa", "Kiên", "Lan", "Linh", "Loan", "Long", "Luân", "Mai",
	"Minh", "My", "Nam", "Ngân", "Ngọc", "Nghĩa", "Nhi", "Nhung", "Phát", "Phú",
	"Phúc", "Phong", "Phương", "Quang", "Quân", "Quỳnh", "Sang", "Sơn", "Tài", "Tâm",
	"Tân", "Thái", "Thắng", "Thảo", "Thành", "Thanh", "Thiện",
	"Thịnh", "Thọ", "Thúy", "Tiên", "Tiến", "Toàn", "Trang", "Trí", "Trinh", "Trọng",
	"Trung", "Tú", "Tùng", "Tuyết", "Uyên", "Vi", "Vinh", "Vy", "Yến",
}
